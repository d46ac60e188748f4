package workflowhistorystore

import (
	"gorm.io/gorm"

	dbmodels "erm-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.WorkflowHistory) (id string, err error)
	List(itemID string) (list []dbmodels.WorkflowHistory, err error)
	// CommentsCountByItem возвращает по каждой заявке число записей
	// истории с непустым комментарием.
	CommentsCountByItem(itemIDs []string) (counts map[string]int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.WorkflowHistory) (id string, err error) {
	err = i.db.
		Omit("Item", "Actor").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(itemID string) (list []dbmodels.WorkflowHistory, err error) {
	list = []dbmodels.WorkflowHistory{}
	err = i.db.
		Where("item_id = ?", itemID).
		Order("created_at ASC, id ASC").
		Preload("Actor").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CommentsCountByItem(itemIDs []string) (map[string]int64, error) {
	counts := map[string]int64{}
	if len(itemIDs) == 0 {
		return counts, nil
	}
	rows := []struct {
		ItemID string
		Cnt    int64
	}{}
	err := i.db.
		Model(&dbmodels.WorkflowHistory{}).
		Select("item_id, count(*) as cnt").
		Where("item_id IN ?", itemIDs).
		Where("comment <> ''").
		Group("item_id").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ItemID] = row.Cnt
	}
	return counts, nil
}
