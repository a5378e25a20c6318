package model

// Fornecedor são os dados cadastrais consultados para exibição junto à nota.
type Fornecedor struct {
	Codigo        string
	Nome          string
	CNPJ          string
	Estado        string
	Classificacao string
}
