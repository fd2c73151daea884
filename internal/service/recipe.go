package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avsytem/receitas-backend/internal/model"
	"github.com/avsytem/receitas-backend/internal/store"
	"github.com/avsytem/receitas-backend/internal/types"
)

var (
	// ErrValidation marks aggregate payloads the store must never see.
	ErrValidation = errors.New("invalid recipe")

	// ErrNotOwner is returned when a caller tries to modify someone else's
	// recipe.
	ErrNotOwner = errors.New("recipe belongs to another user")
)

// RecipeService is the validation and ownership boundary in front of the
// recipe store; the store itself only ever sees well-formed aggregates.
type RecipeService struct {
	receitas *store.ReceitaStore
}

// NewRecipeService creates a recipe service.
func NewRecipeService(receitas *store.ReceitaStore) *RecipeService {
	return &RecipeService{receitas: receitas}
}

// List returns recipes matching the filter.
func (s *RecipeService) List(ctx context.Context, filter store.ListFilter) ([]*model.Receita, error) {
	return s.receitas.List(ctx, filter)
}

// Get returns one full aggregate.
func (s *RecipeService) Get(ctx context.Context, id int) (*model.Receita, error) {
	return s.receitas.GetByID(ctx, id)
}

// Create validates and persists a new recipe owned by usuarioID (which may
// be nil in the standalone deployment).
func (s *RecipeService) Create(ctx context.Context, req types.ReceitaRequest, usuarioID *int) (*model.Receita, error) {
	receita := fromRequest(req)
	receita.UsuarioID = usuarioID

	if err := validate(receita); err != nil {
		return nil, err
	}
	if _, err := s.receitas.Create(ctx, receita); err != nil {
		return nil, err
	}
	return receita, nil
}

// Update replaces the recipe's scalar fields and child collections. The
// caller must own the recipe; recipes without an owner may be edited by
// anyone.
func (s *RecipeService) Update(ctx context.Context, id int, req types.ReceitaRequest, usuarioID *int) (*model.Receita, error) {
	existing, err := s.receitas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(existing, usuarioID); err != nil {
		return nil, err
	}

	receita := fromRequest(req)
	receita.UsuarioID = existing.UsuarioID

	if err := validate(receita); err != nil {
		return nil, err
	}
	if err := s.receitas.Update(ctx, id, receita); err != nil {
		return nil, err
	}
	return receita, nil
}

// Delete removes the recipe and all of its children.
func (s *RecipeService) Delete(ctx context.Context, id int, usuarioID *int) error {
	existing, err := s.receitas.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := checkOwnership(existing, usuarioID); err != nil {
		return err
	}

	deleted, err := s.receitas.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("receita %d: %w", id, store.ErrNotFound)
	}
	return nil
}

// CountByOwner returns how many recipes a user owns.
func (s *RecipeService) CountByOwner(ctx context.Context, usuarioID int) (int, error) {
	return s.receitas.Count(ctx, &usuarioID)
}

func fromRequest(req types.ReceitaRequest) *model.Receita {
	return &model.Receita{
		Nome:            strings.TrimSpace(req.Nome),
		Descricao:       req.Descricao,
		TempoPreparoMin: req.TempoPreparoMin,
		Porcoes:         req.Porcoes,
		Dificuldade:     req.Dificuldade,
		Ingredientes:    req.Ingredientes,
		Passos:          req.Passos,
		Categorias:      req.Categorias,
	}
}

func validate(r *model.Receita) error {
	if r.Nome == "" {
		return fmt.Errorf("%w: nome is required", ErrValidation)
	}
	if len(r.Nome) > 255 {
		return fmt.Errorf("%w: nome exceeds 255 characters", ErrValidation)
	}
	if len(r.Dificuldade) > 50 {
		return fmt.Errorf("%w: dificuldade exceeds 50 characters", ErrValidation)
	}
	for _, ing := range r.Ingredientes {
		if strings.TrimSpace(ing.Nome) == "" {
			return fmt.Errorf("%w: ingrediente nome is required", ErrValidation)
		}
	}
	for _, p := range r.Passos {
		if strings.TrimSpace(p.Descricao) == "" {
			return fmt.Errorf("%w: passo descricao is required", ErrValidation)
		}
	}
	return nil
}

func checkOwnership(r *model.Receita, usuarioID *int) error {
	if r.UsuarioID == nil || usuarioID == nil {
		return nil
	}
	if *r.UsuarioID != *usuarioID {
		return ErrNotOwner
	}
	return nil
}
