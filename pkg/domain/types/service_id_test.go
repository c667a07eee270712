package types_test

import (
	"testing"

	"github.com/civic-lab/sevadesk/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestServiceIDValidate(t *testing.T) {
	t.Run("valid IDs", func(t *testing.T) {
		for _, id := range []string{"service-41", "service-1", "birth-cert", "svc01"} {
			gt.NoError(t, types.ServiceID(id).Validate())
		}
	})

	t.Run("invalid IDs", func(t *testing.T) {
		for _, id := range []string{"", "Service-41", "service_41", "-service", "service-", "service 41"} {
			gt.Error(t, types.ServiceID(id).Validate())
		}
	})
}

func TestServiceIDString(t *testing.T) {
	gt.Value(t, types.ServiceID("service-41").String()).Equal("service-41")
}
