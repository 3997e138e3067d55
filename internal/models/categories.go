package models

// Default category catalogue offered per transaction type. Categories on
// transactions remain free-form strings; these are only suggestions.
var defaultCategories = map[TransactionType][]string{
	TransactionTypeExpense: {
		"Alimentação",
		"Transporte",
		"Moradia",
		"Saúde",
		"Educação",
		"Lazer",
		"Compras",
		"Contas",
		"Academia",
		"Streaming",
		"Restaurantes",
		"Viagens",
		"Pets",
		"Outros",
	},
	TransactionTypeIncome: {
		"Salário",
		"Freelance",
		"Investimentos",
		"Bônus",
		"Presente",
		"Outros",
	},
}

// DefaultCategories returns the suggested categories for the given type.
// The returned slice is a copy; callers may not mutate the catalogue.
func DefaultCategories(t TransactionType) []string {
	src := defaultCategories[t]
	out := make([]string, len(src))
	copy(out, src)
	return out
}
