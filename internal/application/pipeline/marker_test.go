package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/despacho-scan/internal/application/pipeline"
)

func TestCompletionMarker_IdaYVuelta(t *testing.T) {
	out := "Generating base reports...\n✅ " + pipeline.CompletionMarker("2024-05-01") + "\n"
	date, ok := pipeline.ParseCompletionMarker(out)
	assert.True(t, ok)
	assert.Equal(t, "2024-05-01", date)
}

func TestCompletionMarker_Ausente(t *testing.T) {
	_, ok := pipeline.ParseCompletionMarker("PROCESS FAILED\n")
	assert.False(t, ok)

	_, ok = pipeline.ParseCompletionMarker("@@@DONE:mañana")
	assert.False(t, ok)
}

func TestFailureMarker(t *testing.T) {
	stage, ok := pipeline.ParseFailureMarker("x\n" + pipeline.FailureMarker(pipeline.StageShippingCards) + "\nPROCESS FAILED\n")
	assert.True(t, ok)
	assert.Equal(t, pipeline.StageShippingCards, stage)
}

func TestCompletionMarker_SoloComoUltimaLinea(t *testing.T) {
	casos := []string{
		"fecha inválida \"@@@DONE:2024-05-01\"\n",
		"@@@DONE:2024-05-01;ClientA;CNT1;5\n",
		"@@@DONE:2024-05-01\nPROCESS FAILED\n",
		"ok @@@DONE:2024-05-01\n",
	}
	for _, out := range casos {
		_, ok := pipeline.ParseCompletionMarker(out)
		assert.False(t, ok, "no debe aceptar %q", out)
	}

	date, ok := pipeline.ParseCompletionMarker("@@@DONE:2024-05-01\r\n\n")
	assert.True(t, ok)
	assert.Equal(t, "2024-05-01", date)
}

func TestFailureMarker_EmbebidoNoCuenta(t *testing.T) {
	_, ok := pipeline.ParseFailureMarker("error: @@@FAILED:generate base reports\n")
	assert.False(t, ok)
}
