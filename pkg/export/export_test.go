package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRenderOrdersColumnsByHeader(t *testing.T) {
	out, err := NewCSVExporter().Render(Dataset{
		Headers: []string{"id", "total"},
		Rows: []map[string]string{
			{"total": "10.00", "id": "o-1"},
			{"id": "o-2"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "id,total\no-1,10.00\no-2,\n", string(out))

	_, err = NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFRender(t *testing.T) {
	out, err := NewPDFExporter().Render(Document{
		Title:  "Invoice",
		Header: []Field{{Label: "Order", Value: "o-1"}},
		Table: Dataset{
			Headers: []string{"Item", "Qty"},
			Rows:    []map[string]string{{"Item": "Lamp", "Qty": "2"}},
		},
		Summary: []Field{{Label: "Total", Value: "20.00"}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
