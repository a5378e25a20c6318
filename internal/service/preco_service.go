package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/luisfd3v/ajusta-preco/internal/dto"
	"github.com/luisfd3v/ajusta-preco/internal/ledger"
	"github.com/luisfd3v/ajusta-preco/internal/model"
	"github.com/luisfd3v/ajusta-preco/internal/repository"
)

var (
	// ErrValidacao cobre entradas rejeitadas antes de qualquer I/O de escrita.
	ErrValidacao = errors.New("validação")

	// ErrBloqueioFiscal é a recusa dura da gravação: a nota foi lançada com
	// aproveitamento de ICMS incorreto e gravar preços derivados dela
	// perpetuaria o erro fiscal no varejo.
	ErrBloqueioFiscal = errors.New("nota lançada incorretamente (campo Aproveita ICMS); corrija a entrada da nota antes de gravar os preços")

	// ErrNotaSemItens indica que a nota não existe ou não tem linhas.
	ErrNotaSemItens = errors.New("nenhum item encontrado para a nota")
)

// Regime Normal é o único regime que aproveita crédito de ICMS; empresas do
// Simples Nacional dispensam a validação. Os tipos de cálculo 2 e 3 já rateiam
// o imposto corretamente. Política de domínio literal — não generalizar.
const regimeNormal = 3

func aproveitamentoIncorreto(produtos []model.Produto) bool {
	for _, p := range produtos {
		if p.ValorICMS.IsPositive() && p.TipoCalculo != 2 && p.TipoCalculo != 3 {
			return true
		}
	}
	return false
}

// PrecoService coordena a gravação de preços: valida, aplica a trava fiscal,
// confirma o lote no ERP em uma transação e registra a nota no ledger.
type PrecoService interface {
	Gravar(ctx context.Context, req dto.GravarPrecosRequest) (*dto.GravarPrecosResponse, error)
}

type precoService struct {
	produtoRepo repository.ProdutoRepository
	empresaRepo repository.EmpresaRepository
	notas       *ledger.Ledger
	usuario     string
}

func NewPrecoService(
	produtoRepo repository.ProdutoRepository,
	empresaRepo repository.EmpresaRepository,
	notas *ledger.Ledger,
	usuario string,
) PrecoService {
	return &precoService{
		produtoRepo: produtoRepo,
		empresaRepo: empresaRepo,
		notas:       notas,
		usuario:     usuario,
	}
}

// Gravar aplica o lote de preços editados da nota.
//
// A gravação no ERP (preços + auditoria) é uma transação única: ou o lote
// inteiro entra, ou nada entra. O registro no ledger vem depois e é melhor
// esforço — falha do ledger é reportada no Aviso, nunca desfaz preços já
// confirmados.
func (s *precoService) Gravar(ctx context.Context, req dto.GravarPrecosRequest) (*dto.GravarPrecosResponse, error) {
	if len(req.Itens) == 0 {
		return nil, fmt.Errorf("%w: nenhum item editado para gravar", ErrValidacao)
	}
	serie := req.Serie
	if serie == "" {
		serie = "1"
	}

	produtos, err := s.produtoRepo.BuscarPorNota(ctx, req.NumeroNota, serie, req.CodigoFornecedor)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar itens da nota: %w", err)
	}
	if len(produtos) == 0 {
		return nil, fmt.Errorf("%w %s/%s", ErrNotaSemItens, req.NumeroNota, serie)
	}

	// Itens editados precisam pertencer à nota carregada.
	porCodigo := make(map[string]struct{}, len(produtos))
	for _, p := range produtos {
		porCodigo[p.Codigo] = struct{}{}
	}
	for _, item := range req.Itens {
		if _, ok := porCodigo[item.Codigo]; !ok {
			return nil, fmt.Errorf("%w: produto %s não pertence à nota", ErrValidacao, item.Codigo)
		}
	}

	// Trava fiscal antes de qualquer escrita.
	regime, err := s.empresaRepo.BuscarRegimeTributario(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("não foi possível buscar o regime tributário; validação de ICMS desativada")
		regime = 0
	}
	if regime == regimeNormal && aproveitamentoIncorreto(produtos) {
		return nil, ErrBloqueioFiscal
	}

	atualizados, err := s.produtoRepo.GravarPrecos(ctx, req.Itens, s.usuario)
	if err != nil {
		return nil, fmt.Errorf("erro ao atualizar preços: %w", err)
	}

	resp := &dto.GravarPrecosResponse{Atualizados: atualizados, NotaRegistrada: true}

	codigos := make([]string, 0, len(req.Itens))
	for _, item := range req.Itens {
		codigos = append(codigos, item.Codigo)
	}
	if err := s.notas.Registrar(req.CodigoFornecedor, req.NumeroNota, serie, s.usuario, codigos); err != nil {
		log.Error().Err(err).
			Str("fornecedor", req.CodigoFornecedor).
			Str("nota", req.NumeroNota).
			Msg("preços gravados, mas o registro da nota processada falhou")
		resp.NotaRegistrada = false
		resp.Aviso = "preços gravados, mas não foi possível registrar a nota como processada"
	}

	log.Info().
		Str("fornecedor", req.CodigoFornecedor).
		Str("nota", req.NumeroNota).
		Str("serie", serie).
		Int("atualizados", atualizados).
		Msg("preços gravados")

	return resp, nil
}
