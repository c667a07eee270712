package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/civic-lab/sevadesk/pkg/domain/model"
	"github.com/civic-lab/sevadesk/pkg/domain/types"
	"github.com/civic-lab/sevadesk/pkg/repository/catalog"
	"github.com/m-mizutani/gt"
)

func testRecords() []*model.ServiceRecord {
	return []*model.ServiceRecord{
		{
			ID:          "service-41",
			Title:       "Birth Certificate",
			Description: "Issuance of birth certificate for births registered within city limits",
			Department:  "Health Department",
			RequiredDocuments: []string{
				"Hospital birth report",
				"Parents' ID proof",
			},
			Process: "Submit application, verification by registrar, certificate issued",
		},
		{
			ID:          "service-42",
			Title:       "Trade License",
			Description: "New trade license for commercial establishments",
			Department:  "License Department",
			Process:     "Apply online, document scrutiny, inspection, approval",
		},
	}
}

func TestNew(t *testing.T) {
	t.Run("builds catalog with lookup and iteration", func(t *testing.T) {
		c, err := catalog.New(testRecords())
		gt.NoError(t, err).Required()

		gt.Number(t, c.Len()).Equal(2)

		record, ok := c.Get("service-41")
		gt.Bool(t, ok).True()
		gt.Value(t, record.Title).Equal("Birth Certificate")

		_, ok = c.Get("service-999")
		gt.Bool(t, ok).False()
	})

	t.Run("All preserves load order and is restartable", func(t *testing.T) {
		c, err := catalog.New(testRecords())
		gt.NoError(t, err).Required()

		for range 2 {
			var ids []types.ServiceID
			for record := range c.All() {
				ids = append(ids, record.ID)
			}
			gt.Array(t, ids).Equal([]types.ServiceID{"service-41", "service-42"})
		}
	})

	t.Run("rejects duplicate IDs", func(t *testing.T) {
		records := testRecords()
		records[1].ID = "service-41"

		_, err := catalog.New(records)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrDataLoad)).True()
	})

	t.Run("rejects invalid record", func(t *testing.T) {
		records := testRecords()
		records[0].Title = ""

		_, err := catalog.New(records)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrDataLoad)).True()
	})
}

func TestLoad(t *testing.T) {
	writeDataset := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "services.json")
		gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
		return path
	}

	t.Run("loads valid dataset", func(t *testing.T) {
		path := writeDataset(t, `[
			{
				"department": "Health Department",
				"services": [
					{
						"id": "service-41",
						"title": "Birth Certificate",
						"description": "Issuance of birth certificate",
						"required_documents": ["Hospital birth report"],
						"process": "Submit application and wait for verification",
						"application_link": "https://example.gov/birth",
						"physical_verification": false
					}
				]
			},
			{
				"department": "License Department",
				"services": [
					{
						"id": "service-42",
						"title": "Trade License",
						"description": "New trade license",
						"process": "Apply online",
						"physical_verification": true
					}
				]
			}
		]`)

		c, err := catalog.Load(path)
		gt.NoError(t, err).Required()

		gt.Number(t, c.Len()).Equal(2)

		record, ok := c.Get("service-41")
		gt.Bool(t, ok).True()
		gt.Value(t, record.Department).Equal("Health Department")
		gt.Value(t, record.ApplicationLink).Equal("https://example.gov/birth")
		gt.Bool(t, record.PhysicalVerificationRequired).False()

		record, ok = c.Get("service-42")
		gt.Bool(t, ok).True()
		gt.Bool(t, record.PhysicalVerificationRequired).True()
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := catalog.Load(filepath.Join(t.TempDir(), "no-such.json"))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrDataLoad)).True()
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := writeDataset(t, `{"not": "an array"`)
		_, err := catalog.Load(path)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrDataLoad)).True()
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		path := writeDataset(t, `[
			{
				"department": "Health Department",
				"services": [
					{
						"id": "service-41",
						"title": "Birth Certificate",
						"description": "Issuance of birth certificate",
						"process": "Submit application",
						"physical_verification": false,
						"extra_field": "unexpected"
					}
				]
			}
		]`)
		_, err := catalog.Load(path)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrDataLoad)).True()
	})

	t.Run("duplicate IDs across departments", func(t *testing.T) {
		path := writeDataset(t, `[
			{
				"department": "Health Department",
				"services": [
					{"id": "service-41", "title": "Birth Certificate", "description": "d", "process": "p", "physical_verification": false}
				]
			},
			{
				"department": "License Department",
				"services": [
					{"id": "service-41", "title": "Trade License", "description": "d", "process": "p", "physical_verification": false}
				]
			}
		]`)
		_, err := catalog.Load(path)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrDataLoad)).True()
	})

	t.Run("missing department name", func(t *testing.T) {
		path := writeDataset(t, `[
			{
				"services": [
					{"id": "service-41", "title": "Birth Certificate", "description": "d", "process": "p", "physical_verification": false}
				]
			}
		]`)
		_, err := catalog.Load(path)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrDataLoad)).True()
	})
}
