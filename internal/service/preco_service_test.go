package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/luisfd3v/ajusta-preco/internal/dto"
	"github.com/luisfd3v/ajusta-preco/internal/ledger"
	"github.com/luisfd3v/ajusta-preco/internal/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubProdutoRepo struct {
	produtos  []model.Produto
	buscarErr error

	barras    map[string]string
	barrasErr error

	gravarErr error
	gravados  []dto.ItemEditado
}

func (r *stubProdutoRepo) BuscarPorNota(_ context.Context, _, _, _ string) ([]model.Produto, error) {
	return r.produtos, r.buscarErr
}

func (r *stubProdutoRepo) BuscarCodigoBarras(_ context.Context, codigo string) (string, error) {
	if r.barrasErr != nil {
		return "", r.barrasErr
	}
	return r.barras[codigo], nil
}

func (r *stubProdutoRepo) BuscarPrecoPorCodigoBarras(_ context.Context, _ string) (*model.ConsultaPreco, error) {
	return nil, gorm.ErrRecordNotFound
}

// GravarPrecos imita o contrato transacional: falha não deixa nada aplicado.
func (r *stubProdutoRepo) GravarPrecos(_ context.Context, itens []dto.ItemEditado, _ string) (int, error) {
	if r.gravarErr != nil {
		return 0, r.gravarErr
	}
	r.gravados = append(r.gravados, itens...)
	return len(itens), nil
}

func (r *stubProdutoRepo) DB() *gorm.DB { return nil }

type stubEmpresaRepo struct {
	nome      string
	regime    int
	regimeErr error
}

func (r *stubEmpresaRepo) BuscarNome(_ context.Context) (string, error) { return r.nome, nil }

func (r *stubEmpresaRepo) BuscarRegimeTributario(_ context.Context) (int, error) {
	return r.regime, r.regimeErr
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func ledgerDeTeste(t *testing.T) *ledger.Ledger {
	t.Helper()
	return ledger.Abrir(filepath.Join(t.TempDir(), "notas_processadas.json"))
}

func produtoDeNota(codigo string, valorICMS string, tipoCalculo int) model.Produto {
	return model.Produto{
		Codigo:         codigo,
		Descricao:      "PRODUTO " + codigo,
		CustoReposicao: dec("10.00"),
		PrecoVendaMin:  dec("12.00"),
		PrecoVendaMax:  dec("12.00"),
		ValorICMS:      dec(valorICMS),
		TipoCalculo:    tipoCalculo,
	}
}

func requisicaoDeGravacao(codigos ...string) dto.GravarPrecosRequest {
	req := dto.GravarPrecosRequest{
		CodigoFornecedor: "7",
		NumeroNota:       "42",
		Serie:            "1",
	}
	for _, c := range codigos {
		req.Itens = append(req.Itens, dto.ItemEditado{Codigo: c, PrecoNovo: dec("14.90")})
	}
	return req
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestGravar_LoteVazioEhRejeitado(t *testing.T) {
	svc := NewPrecoService(&stubProdutoRepo{}, &stubEmpresaRepo{}, ledgerDeTeste(t), "2")

	_, err := svc.Gravar(context.Background(), dto.GravarPrecosRequest{NumeroNota: "42", CodigoFornecedor: "7"})
	assert.ErrorIs(t, err, ErrValidacao)
}

func TestGravar_NotaSemItens(t *testing.T) {
	svc := NewPrecoService(&stubProdutoRepo{}, &stubEmpresaRepo{}, ledgerDeTeste(t), "2")

	_, err := svc.Gravar(context.Background(), requisicaoDeGravacao("1234"))
	assert.ErrorIs(t, err, ErrNotaSemItens)
}

func TestGravar_ItemForaDaNotaEhRejeitado(t *testing.T) {
	repo := &stubProdutoRepo{produtos: []model.Produto{produtoDeNota("1234", "0", 2)}}
	notas := ledgerDeTeste(t)
	svc := NewPrecoService(repo, &stubEmpresaRepo{}, notas, "2")

	_, err := svc.Gravar(context.Background(), requisicaoDeGravacao("1234", "9999"))

	assert.ErrorIs(t, err, ErrValidacao)
	assert.Empty(t, repo.gravados)
	assert.False(t, notas.JaProcessada("7", "42", "1"))
}

func TestGravar_TravaFiscalNoRegimeNormal(t *testing.T) {
	// ICMS destacado com tipo de cálculo que não rateia o imposto: a nota foi
	// lançada errada e nada pode ser gravado.
	repo := &stubProdutoRepo{produtos: []model.Produto{
		produtoDeNota("1234", "0", 2),
		produtoDeNota("5678", "10.00", 1),
	}}
	notas := ledgerDeTeste(t)
	svc := NewPrecoService(repo, &stubEmpresaRepo{regime: 3}, notas, "2")

	_, err := svc.Gravar(context.Background(), requisicaoDeGravacao("1234"))

	assert.ErrorIs(t, err, ErrBloqueioFiscal)
	assert.Empty(t, repo.gravados)
	assert.False(t, notas.JaProcessada("7", "42", "1"))
}

func TestGravar_TravaFiscalNaoSeAplicaForaDoRegimeNormal(t *testing.T) {
	repo := &stubProdutoRepo{produtos: []model.Produto{produtoDeNota("1234", "10.00", 1)}}
	svc := NewPrecoService(repo, &stubEmpresaRepo{regime: 1}, ledgerDeTeste(t), "2")

	resp, err := svc.Gravar(context.Background(), requisicaoDeGravacao("1234"))

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Atualizados)
}

func TestGravar_RegimeIndisponivelNaoBloqueia(t *testing.T) {
	repo := &stubProdutoRepo{produtos: []model.Produto{produtoDeNota("1234", "10.00", 1)}}
	empresa := &stubEmpresaRepo{regimeErr: errors.New("timeout")}
	svc := NewPrecoService(repo, empresa, ledgerDeTeste(t), "2")

	resp, err := svc.Gravar(context.Background(), requisicaoDeGravacao("1234"))

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Atualizados)
}

func TestGravar_SucessoRegistraNotaNoLedger(t *testing.T) {
	repo := &stubProdutoRepo{produtos: []model.Produto{
		produtoDeNota("1234", "0", 2),
		produtoDeNota("5678", "0", 2),
	}}
	notas := ledgerDeTeste(t)
	svc := NewPrecoService(repo, &stubEmpresaRepo{regime: 3}, notas, "2")

	resp, err := svc.Gravar(context.Background(), requisicaoDeGravacao("1234", "5678"))

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Atualizados)
	assert.True(t, resp.NotaRegistrada)
	assert.Empty(t, resp.Aviso)
	assert.Len(t, repo.gravados, 2)

	require.True(t, notas.JaProcessada("7", "42", "1"))
	r, ok := notas.Obter("7", "42", "1")
	require.True(t, ok)
	assert.Equal(t, "2", r.Usuario)
	assert.Equal(t, []string{"1234", "5678"}, r.CodigosProdutos)
}

func TestGravar_SerieVaziaAssumeUm(t *testing.T) {
	repo := &stubProdutoRepo{produtos: []model.Produto{produtoDeNota("1234", "0", 2)}}
	notas := ledgerDeTeste(t)
	svc := NewPrecoService(repo, &stubEmpresaRepo{}, notas, "2")

	req := requisicaoDeGravacao("1234")
	req.Serie = ""
	_, err := svc.Gravar(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, notas.JaProcessada("7", "42", "1"))
}

func TestGravar_FalhaDaTransacaoNaoRegistraNoLedger(t *testing.T) {
	repo := &stubProdutoRepo{
		produtos:  []model.Produto{produtoDeNota("1234", "0", 2)},
		gravarErr: errors.New("deadlock"),
	}
	notas := ledgerDeTeste(t)
	svc := NewPrecoService(repo, &stubEmpresaRepo{}, notas, "2")

	_, err := svc.Gravar(context.Background(), requisicaoDeGravacao("1234"))

	require.Error(t, err)
	assert.False(t, notas.JaProcessada("7", "42", "1"))
}

func TestGravar_FalhaDoLedgerNaoDesfazPrecos(t *testing.T) {
	repo := &stubProdutoRepo{produtos: []model.Produto{produtoDeNota("1234", "0", 2)}}
	// Caminho do ledger aponta para um diretório: a persistência sempre falha.
	notas := ledger.Abrir(t.TempDir())
	svc := NewPrecoService(repo, &stubEmpresaRepo{}, notas, "2")

	resp, err := svc.Gravar(context.Background(), requisicaoDeGravacao("1234"))

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Atualizados)
	assert.False(t, resp.NotaRegistrada)
	assert.NotEmpty(t, resp.Aviso)
	assert.Len(t, repo.gravados, 1)
}
