package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/luisfd3v/ajusta-preco/internal/config"
	"github.com/luisfd3v/ajusta-preco/internal/handler"
	"github.com/luisfd3v/ajusta-preco/internal/infra"
	"github.com/luisfd3v/ajusta-preco/internal/ledger"
	"github.com/luisfd3v/ajusta-preco/internal/middleware"
	"github.com/luisfd3v/ajusta-preco/internal/repository"
	"github.com/luisfd3v/ajusta-preco/internal/service"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, notas *ledger.Ledger) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	produtoRepo := repository.NewProdutoRepository(db)
	notaRepo := repository.NewNotaRepository(db)
	empresaRepo := repository.NewEmpresaRepository(db)
	fornecedorRepo := repository.NewFornecedorRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	notaSvc := service.NewNotaService(notaRepo, produtoRepo, empresaRepo, notas)
	precoSvc := service.NewPrecoService(produtoRepo, empresaRepo, notas, cfg.UsuarioEvolucao)
	etiquetaSvc := service.NewEtiquetaService(produtoRepo, infra.NewPDFRenderer(), service.EtiquetaOpcoes{
		Largura:   cfg.EtiquetaLargura,
		Altura:    cfg.EtiquetaAltura,
		Offset:    cfg.EtiquetaOffset,
		Diretorio: cfg.PDFStoragePath,
	})

	// ── Handlers ─────────────────────────────────────────────────────────────
	notasH := handler.NewNotasHandler(notaSvc, cfg.NotasLimite)
	precosH := handler.NewPrecosHandler(precoSvc)
	etiquetasH := handler.NewEtiquetasHandler(etiquetaSvc)
	processadasH := handler.NewProcessadasHandler(notas)
	consultaH := handler.NewConsultaPrecosHandler(produtoRepo, rdb)
	fornecedoresH := handler.NewFornecedoresHandler(fornecedorRepo)
	empresaH := handler.NewEmpresaHandler(empresaRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	// Consulta de preço do leitor de balcão
	r.GET("/v1/preco/:barcode", consultaH.GetPrecoPorCodigoBarras)

	v1 := r.Group("/v1")
	{
		v1.GET("/empresa", empresaH.Buscar)
		v1.GET("/fornecedores/:codigo", fornecedoresH.BuscarPorCodigo)

		v1.GET("/notas", notasH.Listar)
		v1.GET("/notas/itens", notasH.BuscarItens)
		v1.GET("/notas/processadas", processadasH.Listar)
		v1.POST("/notas/processadas/purgar", processadasH.Purgar)

		v1.POST("/precos/gravar", precosH.Gravar)
		v1.POST("/etiquetas", etiquetasH.Gerar)
	}

	return r
}
