package riskhandler

import (
	"bytes"
	"context"
	"io"

	"erm-backend/db"
	actionstore "erm-backend/lib/action/store"
	"erm-backend/lib/apperr"
	xlsexport "erm-backend/lib/export/xls"
	filestorage "erm-backend/lib/file-storage"
	filesstore "erm-backend/lib/file-storage/store"
	riskstore "erm-backend/lib/risk/store"
	initchecker "erm-backend/lib/utils/init-checker"
	riskapimodels "erm-backend/models/api/risk"
	dbmodels "erm-backend/models/db"
)

// Чтение рисков и мероприятий. Любые изменения проходят
// только через цепочку согласования.
type Provider interface {
	List(filter riskapimodels.RiskFilter) (list []riskapimodels.RiskView, rowCount int64, err error)
	GetByID(id string) (view riskapimodels.RiskView, err error)
	ListActions(riskID string) (list []riskapimodels.ActionView, err error)
	ExportRegister() (*bytes.Buffer, error)
	UploadAttachment(ctx context.Context, riskID, fileName, contentType string, fileSize int64, fileReader io.Reader) (view riskapimodels.AttachmentView, err error)
	GetAttachment(ctx context.Context, fileID string) (rec *dbmodels.FileStorage, body []byte, err error)
	ListAttachments(riskID string) (list []riskapimodels.AttachmentView, err error)
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"filestorage", filestorage.Instance,
		"xlsexport", xlsexport.Instance,
	)
	Instance = impl{
		store:       riskstore.NewInstance(db.DB),
		actionStore: actionstore.NewInstance(db.DB),
		filesStore:  filesstore.NewInstance(db.DB),
	}
}

type impl struct {
	store       riskstore.Provider
	actionStore actionstore.Provider
	filesStore  filesstore.Provider
}

func (i impl) List(filter riskapimodels.RiskFilter) ([]riskapimodels.RiskView, int64, error) {
	recs, err := i.store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	rowCount, err := i.store.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	list := make([]riskapimodels.RiskView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, riskapimodels.RiskConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) GetByID(id string) (view riskapimodels.RiskView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return view, err
	}
	if rec == nil {
		return view, apperr.New(apperr.KindNotFound, "риск не найден")
	}
	return riskapimodels.RiskConvert(*rec), nil
}

func (i impl) ListActions(riskID string) ([]riskapimodels.ActionView, error) {
	rec, err := i.store.GetByID(riskID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperr.New(apperr.KindNotFound, "риск не найден")
	}
	recs, err := i.actionStore.ListByRisk(riskID)
	if err != nil {
		return nil, err
	}
	list := make([]riskapimodels.ActionView, 0, len(recs))
	for _, item := range recs {
		list = append(list, riskapimodels.ActionConvert(item))
	}
	return list, nil
}

func (i impl) ExportRegister() (*bytes.Buffer, error) {
	recs, err := i.store.ListAll()
	if err != nil {
		return nil, err
	}
	return xlsexport.Instance.ExportRiskRegister(recs)
}

func (i impl) UploadAttachment(ctx context.Context, riskID, fileName, contentType string, fileSize int64, fileReader io.Reader) (view riskapimodels.AttachmentView, err error) {
	rec, err := i.store.GetByID(riskID)
	if err != nil {
		return view, err
	}
	if rec == nil {
		return view, apperr.New(apperr.KindNotFound, "риск не найден")
	}
	fileID, err := filestorage.Instance.UploadRiskFile(ctx, riskID, fileName, contentType, fileSize, fileReader)
	if err != nil {
		return view, err
	}
	stored, err := i.filesStore.GetByID(fileID)
	if err != nil {
		return view, err
	}
	if stored == nil {
		return view, apperr.New(apperr.KindDependency, "файл не сохранён")
	}
	return riskapimodels.AttachmentConvert(*stored), nil
}

func (i impl) GetAttachment(ctx context.Context, fileID string) (*dbmodels.FileStorage, []byte, error) {
	return filestorage.Instance.GetRiskFile(ctx, fileID)
}

func (i impl) ListAttachments(riskID string) ([]riskapimodels.AttachmentView, error) {
	recs, err := i.filesStore.ListByRisk(riskID)
	if err != nil {
		return nil, err
	}
	list := make([]riskapimodels.AttachmentView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, riskapimodels.AttachmentConvert(rec))
	}
	return list, nil
}
