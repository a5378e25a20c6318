// Package ledger rastreia as notas fiscais que já tiveram seus preços
// ajustados, em um arquivo JSON próprio — o banco do ERP nunca é alterado para
// esse fim. O arquivo inteiro é carregado na abertura e reescrito a cada
// mutação, sob um mutex; o contrato é de escritor único (um operador por loja).
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrGravacao sinaliza falha ao persistir o arquivo do ledger. Quem chama
// decide o que fazer; a gravação de preços já confirmada no ERP nunca é
// desfeita por causa dela.
var ErrGravacao = errors.New("falha ao gravar arquivo de notas processadas")

const (
	larguraFornecedor = 5
	larguraNota       = 6

	formatoData = "2006-01-02"
	formatoHora = "15:04:05"
)

// Registro é a entrada persistida para uma nota processada.
type Registro struct {
	Fornecedor       string   `json:"fornecedor"`
	Nota             string   `json:"nota"`
	Serie            string   `json:"serie"`
	Data             string   `json:"data"`
	Hora             string   `json:"hora"`
	Usuario          string   `json:"usuario"`
	ProdutosEditados int      `json:"produtos_editados"`
	CodigosProdutos  []string `json:"codigos_produtos"`
}

// Ledger mantém a tabela de notas processadas em memória, com persistência
// síncrona em JSON. Uma chave mapeia para no máximo um registro
// (reprocessar sobrescreve — sem histórico).
type Ledger struct {
	mu      sync.Mutex
	arquivo string
	notas   map[string]Registro
	agora   func() time.Time
}

// Abrir carrega o arquivo de notas processadas. Arquivo ausente ou corrompido
// vale como tabela vazia — nunca é erro fatal.
func Abrir(arquivo string) *Ledger {
	l := &Ledger{
		arquivo: arquivo,
		notas:   make(map[string]Registro),
		agora:   time.Now,
	}

	data, err := os.ReadFile(arquivo)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("arquivo", arquivo).Msg("não foi possível ler notas processadas; iniciando vazio")
		}
		return l
	}
	if err := json.Unmarshal(data, &l.notas); err != nil {
		log.Warn().Err(err).Str("arquivo", arquivo).Msg("arquivo de notas processadas corrompido; iniciando vazio")
		l.notas = make(map[string]Registro)
	}
	return l
}

// zfill prefixa zeros até a largura pedida, como faz o ERP com os códigos.
func zfill(s string, largura int) string {
	s = strings.TrimSpace(s)
	if len(s) >= largura {
		return s
	}
	return strings.Repeat("0", largura-len(s)) + s
}

// Chave normaliza a identidade composta da nota: fornecedor com 5 dígitos,
// número com 6, série literal. Série vazia assume "1".
func Chave(fornecedor, nota, serie string) string {
	if serie == "" {
		serie = "1"
	}
	return fmt.Sprintf("%s_%s_%s", zfill(fornecedor, larguraFornecedor), zfill(nota, larguraNota), serie)
}

// JaProcessada responde em O(1) se a nota já teve preços ajustados.
// Nunca falha: ledger ilegível equivale a "nada processado".
func (l *Ledger) JaProcessada(fornecedor, nota, serie string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.notas[Chave(fornecedor, nota, serie)]
	return ok
}

// Registrar grava (ou sobrescreve) o registro da nota com o timestamp atual e
// persiste a tabela inteira antes de retornar.
func (l *Ledger) Registrar(fornecedor, nota, serie, usuario string, codigosProdutos []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if serie == "" {
		serie = "1"
	}
	agora := l.agora()
	if codigosProdutos == nil {
		codigosProdutos = []string{}
	}
	l.notas[Chave(fornecedor, nota, serie)] = Registro{
		Fornecedor:       zfill(fornecedor, larguraFornecedor),
		Nota:             zfill(nota, larguraNota),
		Serie:            serie,
		Data:             agora.Format(formatoData),
		Hora:             agora.Format(formatoHora),
		Usuario:          usuario,
		ProdutosEditados: len(codigosProdutos),
		CodigosProdutos:  codigosProdutos,
	}
	return l.salvar()
}

// Obter devolve o registro da nota, se houver.
func (l *Ledger) Obter(fornecedor, nota, serie string) (Registro, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.notas[Chave(fornecedor, nota, serie)]
	return r, ok
}

// ListarTodas devolve os registros ordenados por chave, para listagem estável.
func (l *Ledger) ListarTodas() []Registro {
	l.mu.Lock()
	defer l.mu.Unlock()

	chaves := make([]string, 0, len(l.notas))
	for k := range l.notas {
		chaves = append(chaves, k)
	}
	sort.Strings(chaves)

	out := make([]Registro, 0, len(chaves))
	for _, k := range chaves {
		out = append(out, l.notas[k])
	}
	return out
}

// Total retorna quantas notas estão registradas.
func (l *Ledger) Total() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.notas)
}

// LimparAntigas remove registros com data de processamento anterior a
// agora - dias e persiste se algo foi removido. Retorna quantos saíram.
// Registros com data ilegível são mantidos.
func (l *Ledger) LimparAntigas(dias int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	limite := l.agora().AddDate(0, 0, -dias)
	removidas := 0
	for chave, r := range l.notas {
		data, err := time.Parse(formatoData, r.Data)
		if err != nil {
			continue
		}
		if data.Before(limite) {
			delete(l.notas, chave)
			removidas++
		}
	}
	if removidas == 0 {
		return 0, nil
	}
	return removidas, l.salvar()
}

// salvar reescreve o arquivo inteiro. Chamar com o mutex em mãos.
func (l *Ledger) salvar() error {
	data, err := json.MarshalIndent(l.notas, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGravacao, err)
	}
	if err := os.WriteFile(l.arquivo, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrGravacao, err)
	}
	return nil
}
