package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	dbmodels "erm-backend/models/db"
)

type Provider interface {
	ExportRiskRegister(list []dbmodels.Risk) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var (
	riskHeaders   = []string{"Название", "Описание", "Подразделение", "Вероятность", "Воздействие", "Уровень", "Статус", "Дата создания"}
	riskColWidths = []float64{35, 50, 30, 14, 14, 10, 14, 16}
)

func (i impl) ExportRiskRegister(list []dbmodels.Risk) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, riskHeaders, riskColWidths)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeRiskData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Реестр рисков")
	return f.WriteToBuffer()
}

func writeRiskData(f *excelize.File, sheet string, list []dbmodels.Risk, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(riskHeaders), len(list)+1); err != nil {
		return row, err
	}
	// колонки оценок 4..6
	if err := applyScoreCellStyle(f, sheet, 4, row+1, 6, len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Название"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.Title); err != nil {
			return row, err
		}

		// "Описание"
		col++
		if err := writeColumn(f, sheet, col, row, item.Description); err != nil {
			return row, err
		}

		// "Подразделение"
		col++
		if item.Department != nil {
			if err := writeColumn(f, sheet, col, row, item.Department.Name); err != nil {
				return row, err
			}
		}

		// "Вероятность"
		col++
		if err := writeColumn(f, sheet, col, row, item.Likelihood); err != nil {
			return row, err
		}

		// "Воздействие"
		col++
		if err := writeColumn(f, sheet, col, row, item.Impact); err != nil {
			return row, err
		}

		// "Уровень"
		col++
		if err := writeColumn(f, sheet, col, row, item.Level); err != nil {
			return row, err
		}

		// "Статус"
		col++
		if err := writeColumn(f, sheet, col, row, string(item.Status)); err != nil {
			return row, err
		}

		// "Дата создания"
		col++
		if !item.CreatedAt.IsZero() {
			if err := writeColumn(f, sheet, col, row, item.CreatedAt.Format("02.01.2006")); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}
