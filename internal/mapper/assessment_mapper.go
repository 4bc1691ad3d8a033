package mapper

import (
	"encoding/json"

	"ergo-assist-be/internal/entity"
	"ergo-assist-be/internal/model"

	"gorm.io/datatypes"
)

type AssessmentMapper struct{}

func NewAssessmentMapper() *AssessmentMapper {
	return &AssessmentMapper{}
}

func (m *AssessmentMapper) ToEntity(a *model.Assessment) *entity.Assessment {
	if a == nil {
		return nil
	}

	var metrics map[string]float64
	if len(a.Metrics) > 0 {
		// A row written by us always holds a flat object; tolerate junk anyway.
		_ = json.Unmarshal(a.Metrics, &metrics)
	}

	return &entity.Assessment{
		Id:            a.Id,
		ChatSessionId: a.ChatSessionId,
		UserId:        a.UserId,
		Verdict:       a.Verdict,
		Metrics:       metrics,
		TaskRecord:    json.RawMessage(a.TaskRecord),
		ScanPath:      a.ScanPath,
		CreatedAt:     a.CreatedAt,
	}
}

func (m *AssessmentMapper) ToModel(a *entity.Assessment) *model.Assessment {
	if a == nil {
		return nil
	}

	var metrics datatypes.JSON
	if a.Metrics != nil {
		raw, err := json.Marshal(a.Metrics)
		if err == nil {
			metrics = datatypes.JSON(raw)
		}
	}

	return &model.Assessment{
		Id:            a.Id,
		ChatSessionId: a.ChatSessionId,
		UserId:        a.UserId,
		Verdict:       a.Verdict,
		Metrics:       metrics,
		TaskRecord:    datatypes.JSON(a.TaskRecord),
		ScanPath:      a.ScanPath,
		CreatedAt:     a.CreatedAt,
	}
}

func (m *AssessmentMapper) ToEntities(rows []*model.Assessment) []*entity.Assessment {
	entities := make([]*entity.Assessment, len(rows))
	for i, a := range rows {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
