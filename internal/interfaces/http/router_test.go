package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/despacho-scan/internal/application/dto"
	"github.com/jhoicas/despacho-scan/internal/application/pipeline"
	"github.com/jhoicas/despacho-scan/internal/application/scan"
	"github.com/jhoicas/despacho-scan/internal/application/upload"
	"github.com/jhoicas/despacho-scan/internal/domain"
	"github.com/jhoicas/despacho-scan/internal/domain/entity"
	"github.com/jhoicas/despacho-scan/internal/infrastructure/catalogstore"
	"github.com/jhoicas/despacho-scan/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/despacho-scan/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/despacho-scan/pkg/jwt"
)

const fecha = "2024-05-01"

// fakeRunner simula el pipeline: completa la fecha o falla en la etapa indicada.
type fakeRunner struct {
	failStage string
	gotFiles  []string
}

func (f *fakeRunner) Run(_ context.Context, date, inputDir string) (pipeline.Outcome, error) {
	entries, _ := os.ReadDir(inputDir)
	for _, e := range entries {
		f.gotFiles = append(f.gotFiles, e.Name())
	}
	if f.failStage != "" {
		return pipeline.Outcome{
			BatchID: "b-err",
			Failure: &pipeline.StageError{Stage: f.failStage, Err: domain.ErrStageFailed},
		}, nil
	}
	return pipeline.Outcome{BatchID: "b-ok", CompletedDate: date}, nil
}

type testEnv struct {
	app    *fiber.App
	out    string
	runner *fakeRunner
}

func newEnv(t *testing.T, jwtSecret string) *testEnv {
	t.Helper()
	out := t.TempDir()
	public := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(public, "components"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(public, "components", "scanner.html"), []byte("<html>scanner</html>"), 0o644))

	store := catalogstore.NewFileStore(out)
	require.NoError(t, store.Save(context.Background(), fecha, []entity.CatalogRow{
		{ShipDate: fecha, Client: "Client A", Container: "CNT123", PlannedQuantity: 50},
		{ShipDate: fecha, Client: "Client A", Container: "CNT124", PlannedQuantity: 20},
		{ShipDate: fecha, Client: "Client B", Container: "CNT900", PlannedQuantity: 5},
		{ShipDate: "2024-05-02", Client: "Client C", Container: "CNT1", PlannedQuantity: 1},
	}))

	scanUC := scan.NewScanUseCase(memory.NewLedgerRepository(), memory.NewCompletionRepository(), store, zerolog.Nop())
	runner := &fakeRunner{}
	uploadUC := upload.NewUseCase(runner, t.TempDir(), zerolog.Nop())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ScanUC:       scanUC,
		UndoRegistry: scan.NewUndoRegistry(),
		UploadUC:     uploadUC,
		JWTSecret:    jwtSecret,
		PublicDir:    public,
		OutputDir:    out,
		Port:         3000,
		Log:          zerolog.Nop(),
	})
	return &testEnv{app: app, out: out, runner: runner}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, headers map[string]string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestOrders_ClientesDeLaFecha(t *testing.T) {
	env := newEnv(t, "")

	resp := env.do(t, http.MethodGet, "/api/orders/"+fecha, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var clients []string
	decode(t, resp, &clients)
	assert.Equal(t, []string{"Client A", "Client B"}, clients)
}

func TestOrders_SinCatalogoDevuelveListaVacia(t *testing.T) {
	env := newEnv(t, "")

	resp := env.do(t, http.MethodGet, "/api/orders/2030-01-01", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `[]`, string(body))
}

func TestOrders_FechaInvalida400(t *testing.T) {
	env := newEnv(t, "")

	resp := env.do(t, http.MethodGet, "/api/orders/01-05-2024", nil, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestScan_AcumulaYCalculaPendiente(t *testing.T) {
	env := newEnv(t, "")

	resp := env.do(t, http.MethodPost, "/api/scan", dto.ScanRequest{Date: fecha, Client: "Client A", Container: "CNT123", Qty: 10}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ScanResponse
	decode(t, resp, &out)
	assert.Equal(t, "✔ Agregado 10 a CNT123", out.Message)
	assert.Equal(t, int64(10), out.Scanned)
	require.NotNil(t, out.Total)
	require.NotNil(t, out.Remaining)
	assert.Equal(t, int64(50), *out.Total)
	assert.Equal(t, int64(40), *out.Remaining)

	resp = env.do(t, http.MethodPost, "/api/scan", dto.ScanRequest{Date: fecha, Client: "Client A", Container: "CNT123", Qty: 45}, nil)
	decode(t, resp, &out)
	assert.Equal(t, int64(55), out.Scanned)
	assert.Equal(t, int64(-5), *out.Remaining)
}

func TestScan_SinObjetivoTotalNull(t *testing.T) {
	env := newEnv(t, "")

	resp := env.do(t, http.MethodPost, "/api/scan", dto.ScanRequest{Date: fecha, Client: "Client A", Container: "CNT999", Qty: 3}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var raw map[string]interface{}
	decode(t, resp, &raw)
	assert.Nil(t, raw["total"])
	assert.Nil(t, raw["remaining"])
	assert.Equal(t, float64(3), raw["scanned"])
}

func TestScan_NegativoBajoCeroRechazado(t *testing.T) {
	env := newEnv(t, "")

	resp := env.do(t, http.MethodPost, "/api/scan", dto.ScanRequest{Date: fecha, Client: "Client A", Container: "CNT123", Qty: -1}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, "NEGATIVE_SCAN", out.Code)
	assert.True(t, strings.HasPrefix(out.Message, "❌ Error: "))
}

func TestScan_Validacion400(t *testing.T) {
	env := newEnv(t, "")

	resp := env.do(t, http.MethodPost, "/api/scan", dto.ScanRequest{Date: fecha, Client: "", Container: "CNT123", Qty: 1}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, "VALIDATION", out.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/scan", strings.NewReader("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	raw, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer raw.Body.Close()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
}

func TestUndo_RevierteUltimoEscaneoDeLaEstacion(t *testing.T) {
	env := newEnv(t, "")
	station := map[string]string{apphttp.HeaderStationID: "mesa-1"}

	env.do(t, http.MethodPost, "/api/scan", dto.ScanRequest{Date: fecha, Client: "Client A", Container: "CNT124", Qty: 4}, station).Body.Close()
	env.do(t, http.MethodPost, "/api/scan", dto.ScanRequest{Date: fecha, Client: "Client A", Container: "CNT124", Qty: 6}, station).Body.Close()

	resp := env.do(t, http.MethodPost, "/api/undo", nil, station)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.UndoResponse
	decode(t, resp, &out)
	assert.Equal(t, int64(4), out.Scanned)
	assert.Equal(t, int64(16), *out.Remaining)
	assert.Equal(t, int64(6), out.Undone.Qty)
	assert.Equal(t, "CNT124", out.Undone.Container)

	resp = env.do(t, http.MethodPost, "/api/undo", nil, station)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var errOut dto.ErrorResponse
	decode(t, resp, &errOut)
	assert.Equal(t, "NOTHING_TO_UNDO", errOut.Code)
}

// Qty 0 solo consulta: responde los totales y no reemplaza el deshacer pendiente.
func TestScan_CantidadCeroConsultaTotales(t *testing.T) {
	env := newEnv(t, "")
	station := map[string]string{apphttp.HeaderStationID: "mesa-1"}

	env.do(t, http.MethodPost, "/api/scan", dto.ScanRequest{Date: fecha, Client: "Client A", Container: "CNT124", Qty: 3}, station).Body.Close()

	resp := env.do(t, http.MethodPost, "/api/scan", dto.ScanRequest{Date: fecha, Client: "Client A", Container: "CNT124", Qty: 0}, station)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ScanResponse
	decode(t, resp, &out)
	assert.Equal(t, "Sin cambios en CNT124", out.Message)
	assert.Equal(t, int64(3), out.Scanned)
	assert.Equal(t, int64(17), *out.Remaining)

	resp = env.do(t, http.MethodPost, "/api/undo", nil, station)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var undone dto.UndoResponse
	decode(t, resp, &undone)
	assert.Equal(t, int64(3), undone.Undone.Qty)
	assert.Equal(t, int64(0), undone.Scanned)
}

func TestUndo_SinEstacion400(t *testing.T) {
	env := newEnv(t, "")

	resp := env.do(t, http.MethodPost, "/api/undo", nil, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUndo_EstacionesIndependientes(t *testing.T) {
	env := newEnv(t, "")

	env.do(t, http.MethodPost, "/api/scan", dto.ScanRequest{Date: fecha, Client: "Client B", Container: "CNT900", Qty: 2},
		map[string]string{apphttp.HeaderStationID: "mesa-1"}).Body.Close()

	resp := env.do(t, http.MethodPost, "/api/undo", nil, map[string]string{apphttp.HeaderStationID: "mesa-2"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestFinish_SinClienteRetornaOkFalse(t *testing.T) {
	env := newEnv(t, "")

	resp := env.do(t, http.MethodPost, "/api/finish", dto.FinishRequest{}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var out dto.AckResponse
	decode(t, resp, &out)
	assert.False(t, out.OK)
}

func TestFinish_MarcaYLedgerLoRefleja(t *testing.T) {
	env := newEnv(t, "")

	env.do(t, http.MethodPost, "/api/scan", dto.ScanRequest{Date: fecha, Client: "Client A", Container: "CNT123", Qty: 50}, nil).Body.Close()

	resp := env.do(t, http.MethodPost, "/api/finish", dto.FinishRequest{Client: "Client A", Date: fecha}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ack dto.AckResponse
	decode(t, resp, &ack)
	assert.True(t, ack.OK)

	resp = env.do(t, http.MethodGet, "/api/ledger/"+fecha+"/Client%20A", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ledger dto.ClientLedgerResponse
	decode(t, resp, &ledger)
	assert.Equal(t, "Client A", ledger.Client)
	assert.NotNil(t, ledger.FinishedAt)
	require.Len(t, ledger.Containers, 2)
	assert.Equal(t, "CNT123", ledger.Containers[0].Container)
	assert.Equal(t, int64(0), *ledger.Containers[0].Remaining)
	assert.Equal(t, "CNT124", ledger.Containers[1].Container)
	assert.Equal(t, int64(0), ledger.Containers[1].Scanned)

	// finish es advisory: se puede seguir escaneando.
	resp = env.do(t, http.MethodPost, "/api/scan", dto.ScanRequest{Date: fecha, Client: "Client A", Container: "CNT123", Qty: 1}, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServerInfo_URLDelEscaner(t *testing.T) {
	env := newEnv(t, "")

	resp := env.do(t, http.MethodGet, "/api/server-info", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ServerInfoResponse
	decode(t, resp, &out)
	assert.Equal(t, 3000, out.Port)
	assert.NotEmpty(t, out.IP)
	assert.True(t, strings.HasSuffix(out.URL, ":3000"+apphttp.ScannerPage))
}

func TestStatic_PublicYOutput(t *testing.T) {
	env := newEnv(t, "")

	resp := env.do(t, http.MethodGet, apphttp.ScannerPage, nil, nil)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "scanner")

	resp = env.do(t, http.MethodGet, "/output/"+fecha+"/"+catalogstore.FileName, nil, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func multipartUpload(t *testing.T, path string, names ...string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, n := range names {
		part, err := w.CreateFormFile("files", n)
		require.NoError(t, err)
		_, err = part.Write([]byte("Data wysyłki;Odbiorca;Kontener;Ilość\n"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUpload_ExitoSinSecret(t *testing.T) {
	env := newEnv(t, "")

	resp, err := env.app.Test(multipartUpload(t, "/upload?date="+fecha, "plan.csv"), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.UploadResponse
	decode(t, resp, &out)
	assert.True(t, out.Success)
	assert.Equal(t, fecha, out.Date)
	assert.Equal(t, "b-ok", out.BatchID)
	assert.Equal(t, []string{"plan.csv"}, env.runner.gotFiles)
}

func TestUpload_FechaInvalida400(t *testing.T) {
	env := newEnv(t, "")

	resp, err := env.app.Test(multipartUpload(t, "/upload?date=2024-13-45", "plan.csv"), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var out dto.UploadResponse
	decode(t, resp, &out)
	assert.False(t, out.Success)
	assert.Empty(t, env.runner.gotFiles)
}

func TestUpload_DemasiadosArchivos400(t *testing.T) {
	env := newEnv(t, "")

	resp, err := env.app.Test(multipartUpload(t, "/upload?date="+fecha, "a.csv", "b.csv", "c.csv"), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpload_FallaDeEtapa500(t *testing.T) {
	env := newEnv(t, "")
	env.runner.failStage = pipeline.StageShippingCards

	resp, err := env.app.Test(multipartUpload(t, "/upload?date="+fecha, "plan.csv"), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var out dto.UploadResponse
	decode(t, resp, &out)
	assert.False(t, out.Success)
	assert.Equal(t, pipeline.StageShippingCards, out.Stage)
}

func TestUpload_ConSecretExigeRolDeOperador(t *testing.T) {
	env := newEnv(t, testJWTSecret)

	resp, err := env.app.Test(multipartUpload(t, "/upload?date="+fecha, "plan.csv"), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := multipartUpload(t, "/upload?date="+fecha, "plan.csv")
	req.Header.Set("Authorization", tokenForRole(t, pkgjwt.RoleStation))
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = multipartUpload(t, "/upload?date="+fecha, "plan.csv")
	req.Header.Set("Authorization", tokenForRole(t, pkgjwt.RoleOperator))
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
