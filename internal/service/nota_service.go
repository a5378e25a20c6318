package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/luisfd3v/ajusta-preco/internal/dto"
	"github.com/luisfd3v/ajusta-preco/internal/ledger"
	"github.com/luisfd3v/ajusta-preco/internal/model"
	"github.com/luisfd3v/ajusta-preco/internal/repository"
)

// NotaService atende a busca de notas e a carga dos itens para edição.
type NotaService interface {
	Listar(ctx context.Context, limite int) (*dto.NotaListResponse, error)
	BuscarItens(ctx context.Context, numeroNota, serie, codigoFornecedor string) (*dto.ItensNotaResponse, error)
}

type notaService struct {
	notaRepo    repository.NotaRepository
	produtoRepo repository.ProdutoRepository
	empresaRepo repository.EmpresaRepository
	notas       *ledger.Ledger
}

func NewNotaService(
	notaRepo repository.NotaRepository,
	produtoRepo repository.ProdutoRepository,
	empresaRepo repository.EmpresaRepository,
	notas *ledger.Ledger,
) NotaService {
	return &notaService{
		notaRepo:    notaRepo,
		produtoRepo: produtoRepo,
		empresaRepo: empresaRepo,
		notas:       notas,
	}
}

const formatoDataBR = "02/01/2006"

func (s *notaService) Listar(ctx context.Context, limite int) (*dto.NotaListResponse, error) {
	notas, err := s.notaRepo.BuscarTodas(ctx, limite)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar notas: %w", err)
	}

	data := make([]dto.NotaListItem, 0, len(notas))
	for _, n := range notas {
		data = append(data, dto.NotaListItem{
			Emissao:          n.Emissao.Format(formatoDataBR),
			Numero:           n.Numero,
			Serie:            n.Serie,
			CodigoFornecedor: n.CodigoFornecedor,
			TipoEntrada:      n.TipoEntrada,
			CNPJ:             n.CNPJ,
			Fornecedor:       n.Fornecedor,
			Entrada:          n.Entrada.Format(formatoDataBR),
			Valor:            n.Valor,
			Status:           n.Status,
			Emitente:         n.Emitente,
			ChaveNFE:         n.ChaveNFE,
			Processada:       s.notas.JaProcessada(n.CodigoFornecedor, n.Numero, n.Serie),
		})
	}
	return &dto.NotaListResponse{Data: data, Total: len(data)}, nil
}

// BuscarItens carrega as linhas da nota prontas para edição. Os flags de
// retorno são informativos: Processada nunca impede a recarga, e AlertaICMS
// antecipa na tela o mesmo critério que a gravação aplica como trava.
func (s *notaService) BuscarItens(ctx context.Context, numeroNota, serie, codigoFornecedor string) (*dto.ItensNotaResponse, error) {
	if numeroNota == "" {
		return nil, fmt.Errorf("%w: informe o número da nota", ErrValidacao)
	}
	if serie == "" {
		serie = "1"
	}

	produtos, err := s.produtoRepo.BuscarPorNota(ctx, numeroNota, serie, codigoFornecedor)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar itens da nota: %w", err)
	}
	if len(produtos) == 0 {
		// Distingue nota inexistente de nota sem linhas para esse fornecedor.
		existe, exErr := s.notaRepo.Existe(ctx, numeroNota)
		if exErr == nil && !existe {
			return nil, fmt.Errorf("%w: nota %s/%s não encontrada", ErrNotaSemItens, numeroNota, serie)
		}
		return nil, fmt.Errorf("%w %s/%s", ErrNotaSemItens, numeroNota, serie)
	}

	resp := &dto.ItensNotaResponse{
		Produtos:   make([]dto.ProdutoItem, 0, len(produtos)),
		Processada: s.notas.JaProcessada(codigoFornecedor, numeroNota, serie),
	}
	for i := range produtos {
		resp.Produtos = append(resp.Produtos, produtoToDTO(&produtos[i]))
	}

	regime, err := s.empresaRepo.BuscarRegimeTributario(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("não foi possível buscar o regime tributário; alerta de ICMS desativado")
		regime = 0
	}
	resp.AlertaICMS = regime == regimeNormal && aproveitamentoIncorreto(produtos)

	return resp, nil
}

func produtoToDTO(p *model.Produto) dto.ProdutoItem {
	return dto.ProdutoItem{
		Sequencia:        p.Sequencia,
		Codigo:           p.Codigo,
		Descricao:        p.Descricao,
		CustoReposicao:   p.CustoReposicao,
		CustoTotal:       p.CustoTotal,
		PrecoVendaMin:    p.PrecoVendaMin,
		PrecoVendaMax:    p.PrecoVendaMax,
		PrecoVendaNovo:   p.PrecoVendaNovo,
		MargemVenda:      p.MargemVenda,
		PorcentagemCusto: p.PorcentagemCusto,
		TipoCalculo:      p.TipoCalculo,
		ValorICMS:        p.ValorICMS,
	}
}
