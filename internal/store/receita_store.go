package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/avsytem/receitas-backend/internal/database"
	"github.com/avsytem/receitas-backend/internal/model"
)

// ReceitaStore persists Receita aggregates across the normalized tables.
// Writes are multi-statement and run inside a single transaction; reads use
// one join query and fold the flattened result back into aggregates.
type ReceitaStore struct {
	db *database.DB
}

// NewReceitaStore creates a store on top of the given connection pool.
func NewReceitaStore(db *database.DB) *ReceitaStore {
	return &ReceitaStore{db: db}
}

const (
	insertReceitaSQL = `INSERT INTO receitas (nome, descricao, tempo_preparo_min, porcoes, dificuldade, usuario_id)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`
	updateReceitaSQL = `UPDATE receitas SET nome = ?, descricao = ?, tempo_preparo_min = ?, porcoes = ?, dificuldade = ?
		WHERE id = ?`
	deleteReceitaSQL = `DELETE FROM receitas WHERE id = ?`

	insertIngredienteSQL = `INSERT INTO ingredientes (receita_id, nome, quantidade, unidade) VALUES (?, ?, ?, ?)`
	insertPassoSQL       = `INSERT INTO passos (receita_id, ordem, descricao) VALUES (?, ?, ?)`
	insertCategoriaSQL   = `INSERT INTO categorias (receita_id, nome) VALUES (?, ?)`

	deleteIngredientesSQL = `DELETE FROM ingredientes WHERE receita_id = ?`
	deletePassosSQL       = `DELETE FROM passos WHERE receita_id = ?`
	deleteCategoriasSQL   = `DELETE FROM categorias WHERE receita_id = ?`

	selectReceitasFull = `SELECT r.id, r.nome, r.descricao, r.tempo_preparo_min, r.porcoes, r.dificuldade, r.usuario_id,
		i.id, i.nome, i.quantidade, i.unidade,
		p.id, p.ordem, p.descricao,
		c.id, c.nome
	FROM receitas r
	LEFT JOIN ingredientes i ON r.id = i.receita_id
	LEFT JOIN passos p ON r.id = p.receita_id
	LEFT JOIN categorias c ON r.id = c.receita_id`
)

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	UsuarioID   *int
	Nome        string // case-insensitive substring match
	Dificuldade string

	// OrderByNome sorts the final list by recipe name instead of id. Child
	// collections keep their own internal order either way.
	OrderByNome bool
}

// Create inserts the parent row, reads back the generated id and inserts all
// child rows, in one transaction. On success the aggregate's ID is set.
func (s *ReceitaStore) Create(ctx context.Context, r *model.Receita) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, classify("create receita", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int
	err = tx.QueryRowContext(ctx, s.db.Rebind(insertReceitaSQL),
		r.Nome, r.Descricao, r.TempoPreparoMin, r.Porcoes, r.Dificuldade, r.UsuarioID).Scan(&id)
	if err != nil {
		return 0, classify("create receita", err)
	}

	if err := s.insertChildren(ctx, tx, id, r); err != nil {
		return 0, classify("create receita", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, classify("create receita", err)
	}

	r.ID = id
	return id, nil
}

// Update rewrites the parent row's scalar fields and replaces the child
// collections wholesale: existing children are deleted and the incoming set
// reinserted, all in one transaction. There is no partial child patching.
func (s *ReceitaStore) Update(ctx context.Context, id int, r *model.Receita) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify("update receita", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, s.db.Rebind(updateReceitaSQL),
		r.Nome, r.Descricao, r.TempoPreparoMin, r.Porcoes, r.Dificuldade, id)
	if err != nil {
		return classify("update receita", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update receita %d: %w", id, ErrNotFound)
	}

	for _, q := range []string{deleteIngredientesSQL, deletePassosSQL, deleteCategoriasSQL} {
		if _, err := tx.ExecContext(ctx, s.db.Rebind(q), id); err != nil {
			return classify("update receita", err)
		}
	}

	if err := s.insertChildren(ctx, tx, id, r); err != nil {
		return classify("update receita", err)
	}

	if err := tx.Commit(); err != nil {
		return classify("update receita", err)
	}

	r.ID = id
	return nil
}

// Delete removes the parent row and reports whether a row was actually
// deleted. Child rows go away through the ON DELETE CASCADE declared by the
// schema, so a single statement suffices.
func (s *ReceitaStore) Delete(ctx context.Context, id int) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(deleteReceitaSQL), id)
	if err != nil {
		return false, classify("delete receita", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, classify("delete receita", err)
	}
	return n > 0, nil
}

// List returns all matching aggregates in order of first appearance (by id).
func (s *ReceitaStore) List(ctx context.Context, filter ListFilter) ([]*model.Receita, error) {
	query := selectReceitasFull
	var conds []string
	var args []interface{}

	if filter.UsuarioID != nil {
		conds = append(conds, "r.usuario_id = ?")
		args = append(args, *filter.UsuarioID)
	}
	if filter.Nome != "" {
		conds = append(conds, "LOWER(r.nome) LIKE ?")
		args = append(args, "%"+strings.ToLower(filter.Nome)+"%")
	}
	if filter.Dificuldade != "" {
		conds = append(conds, "r.dificuldade = ?")
		args = append(args, filter.Dificuldade)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	if filter.OrderByNome {
		query += " ORDER BY LOWER(r.nome), r.id, p.ordem ASC"
	} else {
		query += " ORDER BY r.id, p.ordem ASC"
	}

	return s.selectAggregates(ctx, query, args...)
}

// GetByID returns the full aggregate for id, or ErrNotFound.
func (s *ReceitaStore) GetByID(ctx context.Context, id int) (*model.Receita, error) {
	receitas, err := s.selectAggregates(ctx, selectReceitasFull+" WHERE r.id = ? ORDER BY p.ordem ASC", id)
	if err != nil {
		return nil, err
	}
	if len(receitas) == 0 {
		return nil, fmt.Errorf("receita %d: %w", id, ErrNotFound)
	}
	return receitas[0], nil
}

// Count returns the number of recipes, optionally scoped to one owner.
func (s *ReceitaStore) Count(ctx context.Context, usuarioID *int) (int, error) {
	query := "SELECT COUNT(*) FROM receitas"
	var args []interface{}
	if usuarioID != nil {
		query += " WHERE usuario_id = ?"
		args = append(args, *usuarioID)
	}

	var n int
	if err := s.db.QueryRowContext(ctx, s.db.Rebind(query), args...).Scan(&n); err != nil {
		return 0, classify("count receitas", err)
	}
	return n, nil
}

// insertChildren inserts the aggregate's child rows for receitaID using one
// prepared statement per table. Batching is an efficiency measure only; the
// enclosing transaction is the consistency boundary.
func (s *ReceitaStore) insertChildren(ctx context.Context, tx *sql.Tx, receitaID int, r *model.Receita) error {
	if len(r.Ingredientes) > 0 {
		stmt, err := tx.PrepareContext(ctx, s.db.Rebind(insertIngredienteSQL))
		if err != nil {
			return err
		}
		for _, ing := range r.Ingredientes {
			if _, err := stmt.ExecContext(ctx, receitaID, ing.Nome, ing.Quantidade, ing.Unidade); err != nil {
				_ = stmt.Close()
				return err
			}
		}
		_ = stmt.Close()
	}

	if len(r.Passos) > 0 {
		stmt, err := tx.PrepareContext(ctx, s.db.Rebind(insertPassoSQL))
		if err != nil {
			return err
		}
		for _, p := range r.Passos {
			if _, err := stmt.ExecContext(ctx, receitaID, p.Ordem, p.Descricao); err != nil {
				_ = stmt.Close()
				return err
			}
		}
		_ = stmt.Close()
	}

	if len(r.Categorias) > 0 {
		stmt, err := tx.PrepareContext(ctx, s.db.Rebind(insertCategoriaSQL))
		if err != nil {
			return err
		}
		for _, cat := range r.Categorias {
			if _, err := stmt.ExecContext(ctx, receitaID, cat); err != nil {
				_ = stmt.Close()
				return err
			}
		}
		_ = stmt.Close()
	}

	return nil
}

// selectAggregates runs a full-join query and folds the flattened rows into
// one aggregate per distinct recipe id, in order of first appearance.
func (s *ReceitaStore) selectAggregates(ctx context.Context, query string, args ...interface{}) ([]*model.Receita, error) {
	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, classify("query receitas", err)
	}
	defer rows.Close()

	byID := make(map[int]*model.Receita)
	var ordered []*model.Receita

	for rows.Next() {
		var (
			id             int
			nome           string
			descricao      sql.NullString
			tempo, porcoes sql.NullInt64
			dificuldade    sql.NullString
			usuarioID      sql.NullInt64

			ingID      sql.NullInt64
			ingNome    sql.NullString
			ingQtd     sql.NullFloat64
			ingUnidade sql.NullString

			passoID    sql.NullInt64
			passoOrdem sql.NullInt64
			passoDesc  sql.NullString

			catID   sql.NullInt64
			catNome sql.NullString
		)

		err := rows.Scan(&id, &nome, &descricao, &tempo, &porcoes, &dificuldade, &usuarioID,
			&ingID, &ingNome, &ingQtd, &ingUnidade,
			&passoID, &passoOrdem, &passoDesc,
			&catID, &catNome)
		if err != nil {
			return nil, classify("scan receita", err)
		}

		r, ok := byID[id]
		if !ok {
			r = &model.Receita{
				ID:              id,
				Nome:            nome,
				Descricao:       descricao.String,
				TempoPreparoMin: int(tempo.Int64),
				Porcoes:         int(porcoes.Int64),
				Dificuldade:     dificuldade.String,
			}
			if usuarioID.Valid {
				uid := int(usuarioID.Int64)
				r.UsuarioID = &uid
			}
			byID[id] = r
			ordered = append(ordered, r)
		}

		// A recipe with more than one ingredient and more than one step
		// multiplies rows in the triple left join; append each child only
		// once, keyed by structural equality.
		if ingID.Valid {
			ing := model.Ingrediente{Nome: ingNome.String, Quantidade: ingQtd.Float64, Unidade: ingUnidade.String}
			if !r.HasIngrediente(ing) {
				r.Ingredientes = append(r.Ingredientes, ing)
			}
		}
		if passoID.Valid {
			p := model.Passo{Ordem: int(passoOrdem.Int64), Descricao: passoDesc.String}
			if !r.HasPasso(p) {
				r.Passos = append(r.Passos, p)
			}
		}
		if catID.Valid && !r.HasCategoria(catNome.String) {
			r.Categorias = append(r.Categorias, catNome.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, classify("query receitas", err)
	}

	// ORDER BY p.ordem only orders the join rows; re-sort after dedup so the
	// row multiplication cannot disturb step order.
	for _, r := range ordered {
		sort.SliceStable(r.Passos, func(i, j int) bool {
			return r.Passos[i].Ordem < r.Passos[j].Ordem
		})
	}

	return ordered, nil
}
