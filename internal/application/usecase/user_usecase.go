package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-ti/internal/application/dto"
	"github.com/jhoicas/inventario-ti/internal/domain"
	"github.com/jhoicas/inventario-ti/internal/domain/entity"
	"github.com/jhoicas/inventario-ti/internal/domain/repository"
)

// UserUseCase casos de uso CRUD de usuários. A senha é sempre gravada como hash bcrypt.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase constrói o caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// HashPassword gera o hash bcrypt com o custo padrão.
func HashPassword(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func userConflict(err error) error {
	if errors.Is(err, domain.ErrEmailAlreadyExists) || errors.Is(err, domain.ErrDuplicate) {
		return domain.Conflict("email já cadastrado")
	}
	return domain.StorageFailure("user", err)
}

// Create cria um usuário. Email duplicado resulta em Conflict.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !entity.IsValidRole(in.Permissao) {
		return nil, domain.Invalid("permissão inválida: %q", in.Permissao)
	}
	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, domain.StorageFailure("get user by email", err)
	}
	if existing != nil {
		return nil, domain.Conflict("email já cadastrado")
	}
	hash, err := HashPassword(in.Senha)
	if err != nil {
		return nil, err
	}
	ativo := true
	if in.Ativo != nil {
		ativo = *in.Ativo
	}
	now := time.Now()
	user := &entity.User{
		ID:        uuid.New().String(),
		Nome:      strings.TrimSpace(in.Nome),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		SenhaHash: hash,
		Cargo:     in.Cargo,
		Permissao: in.Permissao,
		Ativo:     ativo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, userConflict(err)
	}
	out := dto.NewUserResponse(user)
	return &out, nil
}

// GetByID obtém um usuário por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StorageFailure("get user", err)
	}
	if user == nil {
		return nil, domain.NotFound("usuário %s não encontrado", id)
	}
	out := dto.NewUserResponse(user)
	return &out, nil
}

// List lista os usuários ordenados por nome.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, domain.StorageFailure("list users", err)
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.NewUserResponse(u))
	}
	return out, nil
}

// Update atualiza um usuário. Senha informada é re-hasheada.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StorageFailure("get user", err)
	}
	if user == nil {
		return nil, domain.NotFound("usuário %s não encontrado", id)
	}
	if in.Nome != nil {
		user.Nome = strings.TrimSpace(*in.Nome)
	}
	if in.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Senha != nil && *in.Senha != "" {
		if user.SenhaHash, err = HashPassword(*in.Senha); err != nil {
			return nil, err
		}
	}
	if in.Cargo != nil {
		user.Cargo = *in.Cargo
	}
	if in.Permissao != nil {
		if !entity.IsValidRole(*in.Permissao) {
			return nil, domain.Invalid("permissão inválida: %q", *in.Permissao)
		}
		user.Permissao = *in.Permissao
	}
	if in.Ativo != nil {
		user.Ativo = *in.Ativo
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, userConflict(err)
	}
	out := dto.NewUserResponse(user)
	return &out, nil
}

// Delete remove um usuário. Não é possível excluir a si mesmo nem usuários citados em movimentações.
func (uc *UserUseCase) Delete(ctx context.Context, currentUserID, id string) error {
	if currentUserID == id {
		return domain.Conflict("não é possível excluir o próprio usuário")
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return domain.StorageFailure("get user", err)
	}
	if user == nil {
		return domain.NotFound("usuário %s não encontrado", id)
	}
	referenced, err := uc.repo.IsReferenced(ctx, id)
	if err != nil {
		return domain.StorageFailure("user references", err)
	}
	if referenced {
		return domain.Conflict("usuário possui movimentações registradas; desative-o em vez de excluir")
	}
	return domain.StorageFailure("delete user", uc.repo.Delete(ctx, id))
}
