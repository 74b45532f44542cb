package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/imaging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/storage"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
	"github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

type ClientService struct {
	Repo     *repo.GormRepo
	Events   events.Publisher
	Uploader storage.Uploader

	ImgSize   int
	ImgPrefix string
}

// FromNewDTO builds a client for self-registration, hashing the clear-text password.
func FromNewDTO(dto transport.ClientNewRequest) (*models.Client, error) {
	pw, err := hash.HashPassword(dto.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	cli := models.NewClient(dto.Name, strings.ToLower(dto.Email), dto.TaxID, models.ClientType(dto.Type), pw)
	cli.AddPhones(dto.Phones...)
	cli.Addresses = addressesFromDTO(dto.Addresses)
	return cli, nil
}

// FromUpdateDTO copies editable fields only. Email and password stay as stored.
func FromUpdateDTO(id uint, dto transport.ClientUpdateRequest) *models.Client {
	cli := &models.Client{
		ID:    id,
		Name:  dto.Name,
		TaxID: dto.TaxID,
		Type:  models.ClientType(dto.Type),
	}
	cli.AddPhones(dto.Phones...)
	cli.Addresses = addressesFromDTO(dto.Addresses)
	return cli
}

func addressesFromDTO(in []transport.AddressRequest) []models.Address {
	out := make([]models.Address, 0, len(in))
	for _, a := range in {
		out = append(out, models.Address{
			Street:     a.Street,
			Number:     a.Number,
			Complement: a.Complement,
			District:   a.District,
			ZipCode:    a.ZipCode,
			CityID:     a.CityID,
		})
	}
	return out
}

func validateTaxID(typ models.ClientType, taxID string) error {
	want := 11
	if typ == models.ClientCompany {
		want = 14
	}
	if len(taxID) != want {
		return fieldError("tax_id", fmt.Sprintf("must have %d digits for %s", want, typ))
	}
	return nil
}

func (s *ClientService) FindByID(ctx context.Context, p *tokens.Principal, id uint) (*models.Client, error) {
	if !p.CanAccessClient(id) {
		return nil, ErrAccessDenied
	}
	cli, err := s.Repo.GetClient(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, "Client", id)
	}
	return cli, nil
}

func (s *ClientService) FindByEmail(ctx context.Context, p *tokens.Principal, email string) (*models.Client, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if p == nil || (!p.IsAdmin() && !strings.EqualFold(p.Email, email)) {
		return nil, ErrAccessDenied
	}
	cli, err := s.Repo.GetClientByEmail(ctx, email)
	if err != nil {
		return nil, mapRepoErr(err, "Client", email)
	}
	return cli, nil
}

func (s *ClientService) FindAll(ctx context.Context) ([]models.Client, error) {
	return s.Repo.ListClients(ctx)
}

func (s *ClientService) FindPage(ctx context.Context, req util.PageRequest) (util.Page[models.Client], error) {
	page, err := s.Repo.PageClients(ctx, req.WithDefaults("name", "ASC"))
	return page, mapRepoErr(err, "Client", "-")
}

func (s *ClientService) Insert(ctx context.Context, cli *models.Client) (*models.Client, error) {
	log := logging.FromContext(ctx).With("svc", "client")

	if !cli.Type.Valid() {
		return nil, fieldError("type", "must be INDIVIDUAL or COMPANY")
	}
	if err := validateTaxID(cli.Type, cli.TaxID); err != nil {
		return nil, err
	}
	taken, err := s.Repo.EmailTaken(ctx, cli.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fieldError("email", "email already exists")
	}

	cli.ID = 0
	cli.AddRole(models.RoleClient)
	created, err := s.Repo.CreateClient(ctx, cli)
	if err != nil {
		return nil, contactErr(err, cli, false)
	}
	log.Info("client_registered", "client_id", created.ID)

	publish(ctx, s.Events, events.TopicClients, created.ID, events.ClientRegistered{
		Type:     "client_registered",
		ClientID: created.ID,
		Email:    created.Email,
	})
	return created, nil
}

// contactErr reports an address pointing at a missing city, or an email taken
// by a concurrent registration, as a field error.
// Replacing addresses still referenced by an order stays an integrity violation.
func contactErr(err error, cli *models.Client, updating bool) error {
	if !updating && errors.Is(err, gorm.ErrDuplicatedKey) {
		return fieldError("email", "email already exists")
	}
	if !errors.Is(err, repo.ErrInUse) {
		return mapRepoErr(err, "Client", cli.ID)
	}
	if updating {
		return fmt.Errorf("%w: addresses of client %d are used by orders or reference unknown cities", ErrIntegrity, cli.ID)
	}
	return fieldError("addresses", "unknown city")
}

func (s *ClientService) Update(ctx context.Context, p *tokens.Principal, cli *models.Client) (*models.Client, error) {
	if _, err := s.FindByID(ctx, p, cli.ID); err != nil {
		return nil, err
	}
	if !cli.Type.Valid() {
		return nil, fieldError("type", "must be INDIVIDUAL or COMPANY")
	}
	if err := validateTaxID(cli.Type, cli.TaxID); err != nil {
		return nil, err
	}
	updated, err := s.Repo.UpdateClient(ctx, cli)
	if err != nil {
		return nil, contactErr(err, cli, true)
	}
	return updated, nil
}

// Delete fails with ErrIntegrity while the client has orders.
func (s *ClientService) Delete(ctx context.Context, p *tokens.Principal, id uint) error {
	if _, err := s.FindByID(ctx, p, id); err != nil {
		return err
	}
	err := s.Repo.DeleteClient(ctx, id)
	if errors.Is(err, repo.ErrInUse) {
		return fmt.Errorf("%w: could not delete client %d because it has orders", ErrIntegrity, id)
	}
	return mapRepoErr(err, "Client", id)
}

func (s *ClientService) ChangePassword(ctx context.Context, p *tokens.Principal, id uint, password string) error {
	if _, err := s.FindByID(ctx, p, id); err != nil {
		return err
	}
	if len(password) < 6 {
		return fieldError("password", "must have at least 6 characters")
	}
	h, err := hash.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return mapRepoErr(s.Repo.UpdatePassword(ctx, id, h), "Client", id)
}

// UploadProfilePicture stores a square JPEG of the picture under <prefix><clientId>.jpg.
func (s *ClientService) UploadProfilePicture(ctx context.Context, p *tokens.Principal, file io.Reader) (string, error) {
	if p == nil {
		return "", ErrAccessDenied
	}
	if s.Uploader == nil {
		return "", fmt.Errorf("picture upload is not configured")
	}

	buf, err := imaging.ProfilePicture(file, s.ImgSize)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}
	key := fmt.Sprintf("%s%d.jpg", s.ImgPrefix, p.ClientID)
	url, err := s.Uploader.Upload(ctx, buf, key, "image")
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	logging.FromContext(ctx).Info("profile_picture_uploaded", "svc", "client", "client_id", p.ClientID, "key", key)
	return url, nil
}
