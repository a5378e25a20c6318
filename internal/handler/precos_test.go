package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luisfd3v/ajusta-preco/internal/dto"
	"github.com/luisfd3v/ajusta-preco/internal/service"
)

type stubPrecoService struct {
	resp *dto.GravarPrecosResponse
	err  error
	req  *dto.GravarPrecosRequest
}

func (s *stubPrecoService) Gravar(_ context.Context, req dto.GravarPrecosRequest) (*dto.GravarPrecosResponse, error) {
	s.req = &req
	return s.resp, s.err
}

func doGravarRequest(t *testing.T, svc service.PrecoService, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/v1/precos/gravar", NewPrecosHandler(svc).Gravar)

	req := httptest.NewRequest(http.MethodPost, "/v1/precos/gravar", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const corpoValido = `{
	"codigo_fornecedor": "7",
	"numero_nota": "42",
	"serie": "1",
	"itens": [{"codigo": "1234", "preco_novo": "14.90"}]
}`

func TestGravar_Sucesso(t *testing.T) {
	svc := &stubPrecoService{resp: &dto.GravarPrecosResponse{Atualizados: 1, NotaRegistrada: true}}

	w := doGravarRequest(t, svc, corpoValido)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.req)
	assert.Equal(t, "42", svc.req.NumeroNota)
	require.Len(t, svc.req.Itens, 1)
	assert.Equal(t, "1234", svc.req.Itens[0].Codigo)

	var resp dto.GravarPrecosResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Atualizados)
	assert.True(t, resp.NotaRegistrada)
}

func TestGravar_JSONInvalido(t *testing.T) {
	svc := &stubPrecoService{}

	w := doGravarRequest(t, svc, `{nao é json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.req, "o serviço não deve ser chamado")
}

func TestGravar_ValidacaoDeCampos(t *testing.T) {
	svc := &stubPrecoService{}

	// Sem itens e sem número da nota.
	w := doGravarRequest(t, svc, `{"codigo_fornecedor": "7", "itens": []}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Nil(t, svc.req)
}

func TestGravar_MapeamentoDeErrosDoServico(t *testing.T) {
	casos := []struct {
		nome   string
		err    error
		status int
	}{
		{"validação", service.ErrValidacao, http.StatusBadRequest},
		{"nota sem itens", service.ErrNotaSemItens, http.StatusNotFound},
		{"bloqueio fiscal", service.ErrBloqueioFiscal, http.StatusUnprocessableEntity},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			w := doGravarRequest(t, &stubPrecoService{err: c.err}, corpoValido)
			assert.Equal(t, c.status, w.Code)
		})
	}
}
