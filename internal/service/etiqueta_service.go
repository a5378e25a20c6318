package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog/log"

	"github.com/luisfd3v/ajusta-preco/internal/dto"
	"github.com/luisfd3v/ajusta-preco/internal/etiqueta"
	"github.com/luisfd3v/ajusta-preco/internal/model"
	"github.com/luisfd3v/ajusta-preco/internal/repository"
)

// EtiquetaRenderer materializa os comandos de desenho em um documento
// paginado (uma página por etiqueta). Implementado em infra (fpdf).
type EtiquetaRenderer interface {
	Render(etiquetas []etiqueta.Comandos, caminho string) error
}

// EtiquetaOpcoes é a geometria do canvas e o diretório de saída.
type EtiquetaOpcoes struct {
	Largura, Altura, Offset float64
	Diretorio               string
}

// EtiquetaService gera o PDF de etiquetas dos itens com preço ajustado.
type EtiquetaService interface {
	Gerar(ctx context.Context, req dto.GerarEtiquetasRequest) (*dto.GerarEtiquetasResponse, error)
}

type etiquetaService struct {
	produtoRepo repository.ProdutoRepository
	renderer    EtiquetaRenderer
	opcoes      EtiquetaOpcoes
	agora       func() time.Time
}

func NewEtiquetaService(produtoRepo repository.ProdutoRepository, renderer EtiquetaRenderer, opcoes EtiquetaOpcoes) EtiquetaService {
	return &etiquetaService{
		produtoRepo: produtoRepo,
		renderer:    renderer,
		opcoes:      opcoes,
		agora:       time.Now,
	}
}

func (s *etiquetaService) Gerar(ctx context.Context, req dto.GerarEtiquetasRequest) (*dto.GerarEtiquetasResponse, error) {
	if len(req.Itens) == 0 {
		return nil, fmt.Errorf("%w: nenhum produto para gerar etiquetas", ErrValidacao)
	}

	comandos := make([]etiqueta.Comandos, 0, len(req.Itens))
	for _, item := range req.Itens {
		barras := s.resolverCodigoBarras(ctx, item.Codigo)

		p := model.Produto{Codigo: item.Codigo, Descricao: item.Descricao, PrecoVendaNovo: item.Preco}
		comandos = append(comandos, etiqueta.Calcular(&p, barras, s.opcoes.Largura, s.opcoes.Altura, s.opcoes.Offset))
	}

	caminho := filepath.Join(s.opcoes.Diretorio, s.nomeArquivo(req.Itens))
	if err := s.renderer.Render(comandos, caminho); err != nil {
		return nil, fmt.Errorf("erro ao gerar etiquetas: %w", err)
	}

	log.Info().Str("arquivo", caminho).Int("etiquetas", len(comandos)).Msg("etiquetas geradas")
	return &dto.GerarEtiquetasResponse{Arquivo: caminho, Etiquetas: len(comandos)}, nil
}

// resolverCodigoBarras busca o código de barras cadastrado; sem cadastro (ou
// com a consulta indisponível) o próprio código do produto é impresso.
func (s *etiquetaService) resolverCodigoBarras(ctx context.Context, codigoProduto string) string {
	barras, err := s.produtoRepo.BuscarCodigoBarras(ctx, codigoProduto)
	if err != nil {
		log.Warn().Err(err).Str("codigo", codigoProduto).Msg("falha ao buscar código de barras; usando o código do produto")
		return strings.TrimSpace(codigoProduto)
	}
	if barras == "" {
		return strings.TrimSpace(codigoProduto)
	}
	return barras
}

// nomeArquivo deriva o nome do PDF: etiqueta única leva a descrição
// higienizada e o código do produto; lote leva só a data.
func (s *etiquetaService) nomeArquivo(itens []dto.EtiquetaItem) string {
	data := s.agora().Format("02012006")
	if len(itens) != 1 {
		return fmt.Sprintf("etiquetas_%s.pdf", data)
	}

	item := itens[0]
	var b strings.Builder
	for _, r := range item.Descricao {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	descricao := b.String()
	if r := []rune(descricao); len(r) > 50 {
		descricao = string(r[:50])
	}
	return fmt.Sprintf("%s_%s_%s.pdf", descricao, item.Codigo, data)
}
