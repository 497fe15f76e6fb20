package taskapimodels

import (
	"time"

	"github.com/pkg/errors"

	"shop-tasks-backend/models"
	dbmodels "shop-tasks-backend/models/db"
)

type CommentCreateData struct {
	CommentText string             `json:"comment_text"` // текст комментария
	CommentType models.CommentType `json:"comment_type"` // тип general/issue_report/clarification
}

func (c CommentCreateData) Validate() error {
	if c.CommentText == "" {
		return errors.New("не указан текст комментария")
	}
	if c.CommentType == "" {
		return errors.New("не указан тип комментария")
	}
	return c.CommentType.Validate()
}

type CommentView struct {
	ID          string             `json:"id"`
	TaskID      string             `json:"task_id"`
	CommentText string             `json:"comment_text"`
	CommentType models.CommentType `json:"comment_type"`
	Author      string             `json:"author,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

func CommentConvert(rec dbmodels.TaskComment) CommentView {
	result := CommentView{
		ID:          rec.ID,
		TaskID:      rec.TaskID,
		CommentText: rec.CommentText,
		CommentType: rec.CommentType,
		CreatedAt:   rec.CreatedAt,
	}
	if rec.Employee != nil {
		result.Author = rec.Employee.Name
	}
	if rec.User != nil {
		result.Author = rec.User.GetDisplayName()
	}
	return result
}
