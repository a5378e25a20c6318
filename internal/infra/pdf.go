package infra

// pdf.go — renderização das etiquetas usando go-pdf/fpdf.
// Cada etiqueta vira uma página do tamanho exato do canvas; os comandos de
// posicionamento vêm prontos do pacote etiqueta, aqui só se desenha.
// Códigos de barras são gerados com boombuler/barcode e embutidos como PNG.

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/ean"
	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog/log"

	"github.com/luisfd3v/ajusta-preco/internal/etiqueta"
)

// PDFRenderer implementa service.EtiquetaRenderer com go-pdf/fpdf.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

// Render escreve o documento no caminho dado, criando o diretório se preciso.
func (r *PDFRenderer) Render(etiquetas []etiqueta.Comandos, caminho string) error {
	if len(etiquetas) == 0 {
		return fmt.Errorf("pdf: nenhuma etiqueta para renderizar")
	}
	if err := os.MkdirAll(filepath.Dir(caminho), 0755); err != nil {
		return fmt.Errorf("pdf: criar diretório de saída: %w", err)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: etiquetas[0].Largura, Ht: etiquetas[0].Altura},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	for i, e := range etiquetas {
		pdf.AddPage()

		desenharTexto(pdf, e.Titulo)
		desenharTexto(pdf, e.Preco)
		desenharTexto(pdf, e.Unidade)

		if e.Barras != nil {
			if err := desenharBarras(pdf, *e.Barras, i); err != nil {
				// Etiqueta sai sem o código de barras, igual ao comportamento
				// com código não codificável.
				log.Warn().Err(err).Str("codigo", e.Barras.Valor).Msg("falha ao desenhar código de barras")
			}
		}
	}

	if err := pdf.OutputFileAndClose(caminho); err != nil {
		return fmt.Errorf("pdf: gravar arquivo: %w", err)
	}
	return nil
}

func desenharTexto(pdf *fpdf.Fpdf, t etiqueta.Texto) {
	estilo := ""
	if t.Negrito {
		estilo = "B"
	}
	pdf.SetFont("Helvetica", estilo, t.Fonte)
	pdf.SetXY(t.X, t.Y)
	// Altura da célula proporcional ao corpo da fonte (pt → mm).
	pdf.CellFormat(t.Largura, t.Fonte*0.42, t.Valor, "", 0, t.Alinhamento, false, 0, "")
}

func desenharBarras(pdf *fpdf.Fpdf, b etiqueta.Barras, pagina int) error {
	bc, err := codificar(b)
	if err != nil {
		return err
	}

	// ~8 px/mm dá resolução suficiente para leitores de balcão.
	escalado, err := barcode.Scale(bc, int(b.Largura*8), int(b.Altura*8))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, escalado); err != nil {
		return err
	}

	nome := fmt.Sprintf("barras-%d-%s", pagina, b.Valor)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(nome, opts, &buf)
	pdf.ImageOptions(nome, b.X, b.Y, b.Largura, b.Altura, false, opts, 0, "")
	return nil
}

func codificar(b etiqueta.Barras) (barcode.Barcode, error) {
	switch b.Simbologia {
	case etiqueta.SimbologiaEAN13, etiqueta.SimbologiaEAN8:
		// ean.Encode calcula o dígito verificador para códigos de 7/12 dígitos
		// e valida o verificador dos de 8/13.
		return ean.Encode(b.Valor)
	default:
		return code128.Encode(b.Valor)
	}
}
