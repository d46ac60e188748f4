package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	workflowapimodels "erm-backend/models/api/workflow"
)

// GenerateApprovalProtocol формирует pdf протокол согласования заявки
// с полным следом переходов.
func GenerateApprovalProtocol(item workflowapimodels.WorkflowItemView, history []workflowapimodels.WorkflowHistoryView) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateApprovalProtocol panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "static/font/")
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	pdf.SetFont("Arial", "B", 16)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	_, lineHt := pdf.GetFontSize()
	pdf.CellFormat(0, lineHt+4, "Протокол согласования", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 12)
	_, lineHt = pdf.GetFontSize()
	writeLine := func(label, value string) {
		if value == "" {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(55, lineHt+2, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.MultiCell(0, lineHt+2, value, "", "L", false)
	}

	writeLine("Заявка:", item.ID)
	writeLine("Тип сущности:", item.EntityTypeName)
	writeLine("Подразделение:", item.DepartmentName)
	writeLine("Автор:", item.RequesterName)
	writeLine("Состояние:", item.StateName)
	writeLine("Подана:", item.CreatedAt.Format("02.01.2006 15:04"))

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, lineHt+4, "История переходов", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	_, lineHt = pdf.GetFontSize()

	for _, rec := range history {
		line := fmt.Sprintf("%s  %s: %s (%s -> %s)",
			rec.CreatedAt.Format("02.01.2006 15:04"),
			rec.ActorName,
			rec.ActionName,
			rec.FromState.ToHuman(),
			rec.ToState.ToHuman(),
		)
		pdf.MultiCell(0, lineHt+2, line, "", "L", false)
		if rec.Comment != "" {
			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(0, lineHt+2, "    Комментарий: "+rec.Comment, "", "L", false)
			pdf.SetFont("Arial", "", 11)
		}
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
