package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sheet() ClientSheet {
	return ClientSheet{
		Date:   "2024-05-01",
		Client: "ClientA",
		Lines: []ContainerLine{
			{Container: "CNT123", Planned: 50},
			{Container: "CNT124", Planned: 1200},
		},
	}
}

func TestGenerator_DocumentosSonPDF(t *testing.T) {
	g := NewGenerator()

	for name, gen := range map[string]func() ([]byte, error){
		"hoja cliente": func() ([]byte, error) { return g.ClientTemplate(sheet()) },
		"tarjetas":     func() ([]byte, error) { return g.ShippingCards(sheet()) },
		"limpieza":     func() ([]byte, error) { return g.CleaningChecklist("2024-05-01", []ClientSheet{sheet()}) },
		"sin datos":    func() ([]byte, error) { return g.CleaningChecklist("2024-05-01", nil) },
	} {
		t.Run(name, func(t *testing.T) {
			data, err := gen()
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
		})
	}
}

func TestClientSheet_Total(t *testing.T) {
	assert.Equal(t, int64(1250), sheet().Total())
}

func TestCardPayload(t *testing.T) {
	assert.Equal(t, "2024-05-01|ClientA|CNT123", CardPayload("2024-05-01", "ClientA", "CNT123"))
}

func TestFormatQty(t *testing.T) {
	cases := map[int64]string{0: "0", 999: "999", 1000: "1.000", 25000: "25.000", 1000000: "1.000.000", -5: "-5", -1200: "-1.200"}
	for in, want := range cases {
		assert.Equal(t, want, formatQty(in))
	}
}
