package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func novoLedgerDeTeste(t *testing.T) (*Ledger, string) {
	t.Helper()
	arquivo := filepath.Join(t.TempDir(), "notas_processadas.json")
	return Abrir(arquivo), arquivo
}

func TestAbrir_ArquivoAusenteComecaVazio(t *testing.T) {
	l, _ := novoLedgerDeTeste(t)
	assert.Equal(t, 0, l.Total())
}

func TestAbrir_ArquivoCorrompidoComecaVazio(t *testing.T) {
	arquivo := filepath.Join(t.TempDir(), "notas_processadas.json")
	require.NoError(t, os.WriteFile(arquivo, []byte("{nao é json"), 0644))

	l := Abrir(arquivo)
	assert.Equal(t, 0, l.Total())

	// O ledger segue utilizável depois da recuperação.
	require.NoError(t, l.Registrar("7", "42", "1", "2", []string{"1234"}))
	assert.True(t, l.JaProcessada("7", "42", "1"))
}

func TestChave_NormalizaFornecedorNotaESerie(t *testing.T) {
	assert.Equal(t, "00007_000042_1", Chave("7", "42", "1"))
	assert.Equal(t, "00007_000042_1", Chave("7", "42", ""))
	assert.Equal(t, "00007_000042_1", Chave(" 7 ", " 42 ", "1"))
	assert.Equal(t, "12345_123456_2", Chave("12345", "123456", "2"))
	// Valores mais largos que o preenchimento passam intactos.
	assert.Equal(t, "123456_1234567_1", Chave("123456", "1234567", "1"))
}

func TestRegistrar_MarcaComoProcessadaComQualquerGrafiaDaChave(t *testing.T) {
	l, _ := novoLedgerDeTeste(t)

	assert.False(t, l.JaProcessada("7", "42", "1"))
	require.NoError(t, l.Registrar("7", "42", "1", "2", []string{"1234", "5678"}))

	assert.True(t, l.JaProcessada("7", "42", "1"))
	assert.True(t, l.JaProcessada("00007", "000042", "1"))
	assert.True(t, l.JaProcessada("7", "42", ""))
	assert.False(t, l.JaProcessada("7", "42", "2"))
	assert.False(t, l.JaProcessada("8", "42", "1"))
}

func TestRegistrar_PersisteEntreAberturas(t *testing.T) {
	l, arquivo := novoLedgerDeTeste(t)
	require.NoError(t, l.Registrar("7", "42", "1", "2", []string{"1234"}))

	reaberto := Abrir(arquivo)
	assert.True(t, reaberto.JaProcessada("7", "42", "1"))

	r, ok := reaberto.Obter("7", "42", "1")
	require.True(t, ok)
	assert.Equal(t, "00007", r.Fornecedor)
	assert.Equal(t, "000042", r.Nota)
	assert.Equal(t, "1", r.Serie)
	assert.Equal(t, "2", r.Usuario)
	assert.Equal(t, 1, r.ProdutosEditados)
	assert.Equal(t, []string{"1234"}, r.CodigosProdutos)
}

func TestRegistrar_ReprocessamentoSobrescreveSemDuplicar(t *testing.T) {
	l, _ := novoLedgerDeTeste(t)

	require.NoError(t, l.Registrar("7", "42", "1", "2", []string{"1234"}))
	require.NoError(t, l.Registrar("00007", "000042", "1", "9", []string{"1234", "5678", "9999"}))

	assert.Equal(t, 1, l.Total())
	r, ok := l.Obter("7", "42", "1")
	require.True(t, ok)
	assert.Equal(t, "9", r.Usuario)
	assert.Equal(t, 3, r.ProdutosEditados)
}

func TestListarTodas_OrdenadoPorChave(t *testing.T) {
	l, _ := novoLedgerDeTeste(t)
	require.NoError(t, l.Registrar("9", "1", "1", "2", nil))
	require.NoError(t, l.Registrar("1", "500", "1", "2", nil))
	require.NoError(t, l.Registrar("1", "2", "1", "2", nil))

	registros := l.ListarTodas()
	require.Len(t, registros, 3)
	assert.Equal(t, "000002", registros[0].Nota)
	assert.Equal(t, "000500", registros[1].Nota)
	assert.Equal(t, "00009", registros[2].Fornecedor)
}

func TestLimparAntigas(t *testing.T) {
	l, _ := novoLedgerDeTeste(t)

	l.agora = func() time.Time { return time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC) }
	require.NoError(t, l.Registrar("7", "1", "1", "2", nil))

	l.agora = func() time.Time { return time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC) }
	require.NoError(t, l.Registrar("7", "2", "1", "2", nil))

	removidas, err := l.LimparAntigas(7)
	require.NoError(t, err)
	assert.Equal(t, 1, removidas)
	assert.False(t, l.JaProcessada("7", "1", "1"))
	assert.True(t, l.JaProcessada("7", "2", "1"))
}

func TestLimparAntigas_DataIlegivelEhMantida(t *testing.T) {
	l, _ := novoLedgerDeTeste(t)
	l.notas[Chave("7", "1", "1")] = Registro{Fornecedor: "00007", Nota: "000001", Serie: "1", Data: "ontem"}

	removidas, err := l.LimparAntigas(1)
	require.NoError(t, err)
	assert.Equal(t, 0, removidas)
	assert.True(t, l.JaProcessada("7", "1", "1"))
}
