// Package etiqueta calcula o posicionamento dos campos de uma etiqueta de
// preço/código de barras. O cálculo é uma função pura sobre o item e a
// geometria do canvas: mesmo item + mesma geometria → mesmos comandos.
// A resolução do código de barras impresso (produto → valor a codificar) e o
// desenho em si ficam fora daqui (repositório e renderizador de PDF).
package etiqueta

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/luisfd3v/ajusta-preco/internal/model"
)

// Simbologia do bloco de código de barras, escolhida pelo tamanho do código.
type Simbologia string

const (
	SimbologiaEAN13   Simbologia = "ean13"
	SimbologiaEAN8    Simbologia = "ean8"
	SimbologiaCode128 Simbologia = "code128"
)

const (
	maxCaracteresTitulo = 60

	fonteTitulo  = 14.0
	fontePreco   = 28.0
	fonteUnidade = 11.0
)

// Texto é um comando de desenho de texto. X/Largura delimitam o bloco em que o
// renderizador aplica o alinhamento; Y é a borda superior, em mm.
type Texto struct {
	X, Y        float64
	Largura     float64
	Fonte       float64
	Negrito     bool
	Alinhamento string // "L", "C" ou "R"
	Valor       string
}

// Barras é o bloco do código de barras, com a simbologia já decidida.
type Barras struct {
	X, Y            float64
	Largura, Altura float64
	Simbologia      Simbologia
	Valor           string
}

// Comandos é o conjunto determinístico de instruções para uma etiqueta.
type Comandos struct {
	Largura, Altura float64

	Titulo  Texto
	Barras  *Barras // nil quando o código não é codificável
	Preco   Texto
	Unidade Texto
}

// Calcular monta os comandos de desenho de uma etiqueta para o produto, dado o
// código de barras já resolvido e a geometria do canvas em mm.
func Calcular(p *model.Produto, codigoBarras string, largura, altura, offsetVertical float64) Comandos {
	titulo := p.Descricao
	if r := []rune(titulo); len(r) > maxCaracteresTitulo {
		titulo = string(r[:maxCaracteresTitulo])
	}

	cmds := Comandos{
		Largura: largura,
		Altura:  altura,
		Titulo: Texto{
			X:           0,
			Y:           offsetVertical + 1,
			Largura:     largura,
			Fonte:       fonteTitulo,
			Negrito:     true,
			Alinhamento: "C",
			Valor:       titulo,
		},
		Preco: Texto{
			X:           largura * 0.55,
			Y:           offsetVertical + altura - 13,
			Largura:     largura * 0.43,
			Fonte:       fontePreco,
			Negrito:     true,
			Alinhamento: "R",
			Valor:       FormatarPreco(p.PrecoVendaNovo),
		},
		Unidade: Texto{
			X:           largura - 12,
			Y:           offsetVertical + altura - 5,
			Largura:     10,
			Fonte:       fonteUnidade,
			Alinhamento: "L",
			Valor:       "UN",
		},
	}

	if sim, ok := SimbologiaPara(codigoBarras); ok {
		cmds.Barras = &Barras{
			X:          2,
			Y:          offsetVertical + 7,
			Largura:    largura * 0.5,
			Altura:     altura - 8,
			Simbologia: sim,
			Valor:      codigoBarras,
		}
	}

	return cmds
}

// SimbologiaPara decide a simbologia pelo tamanho do código: 12–13 dígitos →
// EAN-13, 7–8 dígitos → EAN-8, qualquer outro código imprimível → Code128.
// Códigos com menos de 3 caracteres não são codificáveis.
func SimbologiaPara(codigo string) (Simbologia, bool) {
	codigo = strings.TrimSpace(codigo)
	if len(codigo) < 3 {
		return "", false
	}
	switch {
	case somenteDigitos(codigo) && (len(codigo) == 12 || len(codigo) == 13):
		return SimbologiaEAN13, true
	case somenteDigitos(codigo) && (len(codigo) == 7 || len(codigo) == 8):
		return SimbologiaEAN8, true
	default:
		return SimbologiaCode128, true
	}
}

func somenteDigitos(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatarPreco formata o valor no padrão brasileiro de etiqueta:
// "R$ 1.234,56" — milhar com ponto, decimal com vírgula, duas casas.
func FormatarPreco(v decimal.Decimal) string {
	s := v.StringFixed(2) // ex.: -1234.56
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	partes := strings.SplitN(s, ".", 2)
	inteiro, fracao := partes[0], partes[1]

	var b strings.Builder
	for i, d := range inteiro {
		if i > 0 && (len(inteiro)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	out := "R$ " + b.String() + "," + fracao
	if neg {
		out = "R$ -" + b.String() + "," + fracao
	}
	return out
}
