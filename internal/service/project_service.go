package service

import (
	"context"
	"errors"
	"strings"

	"github.com/maeartistry/internal/db"
	"github.com/maeartistry/internal/store"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrProjectInvalid  = errors.New("project is invalid")
)

// ProjectService manages admin-only client projects.
type ProjectService struct {
	repo store.Repository
}

// ProjectInput represents fields accepted when creating or updating a project.
type ProjectInput struct {
	Name        string
	Description string
	Status      string
	ClientName  string
	Budget      float64
}

// NewProjectService creates a ProjectService instance.
func NewProjectService(repo store.Repository) *ProjectService {
	return &ProjectService{repo: repo}
}

// List returns all projects, newest first.
func (s *ProjectService) List(ctx context.Context) ([]db.Project, error) {
	return s.repo.ListProjects(ctx)
}

// Create inserts a project.
func (s *ProjectService) Create(ctx context.Context, input ProjectInput) (*db.Project, error) {
	project, err := buildProject(db.Project{}, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.InsertProject(ctx, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Update replaces the editable fields of a project.
func (s *ProjectService) Update(ctx context.Context, id string, input ProjectInput) (*db.Project, error) {
	existing, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	project, err := buildProject(*existing, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateProject(ctx, &project); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) get(ctx context.Context, id string) (*db.Project, error) {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, ErrProjectNotFound
}

// Delete removes a project.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteProject(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	return nil
}

func buildProject(base db.Project, input ProjectInput) (db.Project, error) {
	base.Name = strings.TrimSpace(input.Name)
	base.Description = strings.TrimSpace(input.Description)
	base.Status = db.ProjectStatus(strings.ToLower(strings.TrimSpace(input.Status)))
	base.ClientName = strings.TrimSpace(input.ClientName)
	base.Budget = input.Budget

	if err := base.Validate(); err != nil {
		return base, errors.Join(ErrProjectInvalid, err)
	}
	return base, nil
}
