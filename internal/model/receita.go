package model

// Receita is the aggregate root: a recipe plus its owned ingredients, steps
// and category labels. The whole aggregate is written and read as one unit.
type Receita struct {
	ID              int           `json:"id"`
	Nome            string        `json:"nome"`
	Descricao       string        `json:"descricao,omitempty"`
	TempoPreparoMin int           `json:"tempo_preparo_min,omitempty"`
	Porcoes         int           `json:"porcoes,omitempty"`
	Dificuldade     string        `json:"dificuldade,omitempty"`
	UsuarioID       *int          `json:"usuario_id,omitempty"`
	Ingredientes    []Ingrediente `json:"ingredientes"`
	Passos          []Passo       `json:"passos"`
	Categorias      []string      `json:"categorias"`
}

// Ingrediente has no identity of its own; two ingredients are the same when
// name, quantity and unit all match.
type Ingrediente struct {
	Nome       string  `json:"nome"`
	Quantidade float64 `json:"quantidade"`
	Unidade    string  `json:"unidade,omitempty"`
}

// Equal reports structural equality.
func (i Ingrediente) Equal(other Ingrediente) bool {
	return i.Nome == other.Nome && i.Quantidade == other.Quantidade && i.Unidade == other.Unidade
}

// Passo is a single preparation step. Ordem defines the display and execution
// order; it is supplied by the caller and persisted as-is.
type Passo struct {
	Ordem     int    `json:"ordem"`
	Descricao string `json:"descricao"`
}

// Equal reports structural equality.
func (p Passo) Equal(other Passo) bool {
	return p.Ordem == other.Ordem && p.Descricao == other.Descricao
}

// HasIngrediente reports whether the aggregate already carries ing.
func (r *Receita) HasIngrediente(ing Ingrediente) bool {
	for _, existing := range r.Ingredientes {
		if existing.Equal(ing) {
			return true
		}
	}
	return false
}

// HasPasso reports whether the aggregate already carries p.
func (r *Receita) HasPasso(p Passo) bool {
	for _, existing := range r.Passos {
		if existing.Equal(p) {
			return true
		}
	}
	return false
}

// HasCategoria reports whether the aggregate already carries the label.
func (r *Receita) HasCategoria(nome string) bool {
	for _, existing := range r.Categorias {
		if existing == nome {
			return true
		}
	}
	return false
}
