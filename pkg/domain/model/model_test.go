package model_test

import (
	"testing"

	"github.com/civic-lab/sevadesk/pkg/domain/model"
	"github.com/civic-lab/sevadesk/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestServiceRecordValidate(t *testing.T) {
	valid := func() *model.ServiceRecord {
		return &model.ServiceRecord{
			ID:              "service-41",
			Title:           "Birth Certificate",
			Description:     "Issuance of birth certificate",
			Department:      "Health Department",
			ApplicationLink: "https://example.gov/birth",
		}
	}

	t.Run("valid record", func(t *testing.T) {
		gt.NoError(t, valid().Validate())
	})

	t.Run("link is optional", func(t *testing.T) {
		record := valid()
		record.ApplicationLink = ""
		gt.NoError(t, record.Validate())
	})

	t.Run("invalid ID", func(t *testing.T) {
		record := valid()
		record.ID = "Service 41"
		gt.Error(t, record.Validate())
	})

	t.Run("missing title", func(t *testing.T) {
		record := valid()
		record.Title = ""
		gt.Error(t, record.Validate())
	})

	t.Run("missing description", func(t *testing.T) {
		record := valid()
		record.Description = ""
		gt.Error(t, record.Validate())
	})

	t.Run("relative application link", func(t *testing.T) {
		record := valid()
		record.ApplicationLink = "/apply/birth"
		gt.Error(t, record.Validate())
	})
}

func TestMatchResult(t *testing.T) {
	result := model.MatchResult{
		{Record: &model.ServiceRecord{ID: "service-41"}, Score: 9},
		{Record: &model.ServiceRecord{ID: "service-42"}, Score: 4},
	}

	t.Run("IDs keep rank order", func(t *testing.T) {
		gt.Array(t, result.IDs()).Equal([]types.ServiceID{"service-41", "service-42"})
	})

	t.Run("Empty", func(t *testing.T) {
		gt.Bool(t, result.Empty()).False()
		gt.Bool(t, model.MatchResult{}.Empty()).True()
	})
}

func TestResponseEnvelopeReferences(t *testing.T) {
	envelope := &model.ResponseEnvelope{
		ServiceReferences: []types.ServiceID{"service-41"},
	}

	gt.Bool(t, envelope.References("service-41")).True()
	gt.Bool(t, envelope.References("service-42")).False()
}
