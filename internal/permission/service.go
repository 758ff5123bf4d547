package permission

import (
	"log/slog"
)

// RepositoryAPI is the data access contract for the grant set.
type RepositoryAPI interface {
	Count() (int64, error)
	GetAll() ([]RolePermission, error)
	GetByRole(role string) ([]RolePermission, error)
	// Insert must swallow duplicate-key violations so that concurrent
	// seeding or repeated grants stay idempotent.
	Insert(grant *RolePermission) error
	Delete(role, permission string) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// HasPermission reports whether role may use permission. HR is always
// granted regardless of the stored grant set.
func (s *Service) HasPermission(role, permission string) (bool, error) {
	if role == RoleHR {
		return true, nil
	}

	grants, err := s.repo.GetByRole(role)
	if err != nil {
		s.logger.Error("failed to load grants for role", "error", err, "role", role)
		return false, err
	}

	for _, g := range grants {
		if g.Permission == permission {
			return true, nil
		}
	}
	return false, nil
}

// Snapshot returns the full capability set for a role. Clients render
// navigation from this; they never re-derive the default matrix.
func (s *Service) Snapshot(role string) ([]string, error) {
	if role == RoleHR {
		return append([]string(nil), All...), nil
	}

	grants, err := s.repo.GetByRole(role)
	if err != nil {
		return nil, err
	}

	perms := make([]string, 0, len(grants))
	for _, g := range grants {
		perms = append(perms, g.Permission)
	}
	return perms, nil
}

// Seed installs the default grant matrix. It no-ops when any grant already
// exists, and individual duplicate inserts are swallowed, so calling it N
// times (or from two racing processes) leaves the same grant set as one call.
func (s *Service) Seed() error {
	count, err := s.repo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Debug("permission seed skipped: grants already present", "count", count)
		return nil
	}

	defaults := DefaultGrants()
	for i := range defaults {
		if err := s.repo.Insert(&defaults[i]); err != nil {
			s.logger.Error("failed to insert default grant",
				"error", err,
				"role", defaults[i].Role,
				"permission", defaults[i].Permission)
			return err
		}
	}

	s.logger.Info("permission matrix seeded", "grants", len(defaults))
	return nil
}

// Grant adds a (role, permission) pair. Granting to HR is rejected: HR is
// implicitly fully granted and its grant set must stay untouchable.
func (s *Service) Grant(role, permission string) error {
	if role == RoleHR {
		return ErrHRImmutable
	}

	if err := s.repo.Insert(&RolePermission{Role: role, Permission: permission}); err != nil {
		s.logger.Error("failed to grant permission", "error", err, "role", role, "permission", permission)
		return err
	}

	s.logger.Info("permission granted", "role", role, "permission", permission)
	return nil
}

// Revoke removes all matching (role, permission) pairs. HR is never revocable.
func (s *Service) Revoke(role, permission string) error {
	if role == RoleHR {
		return ErrHRImmutable
	}

	if err := s.repo.Delete(role, permission); err != nil {
		s.logger.Error("failed to revoke permission", "error", err, "role", role, "permission", permission)
		return err
	}

	s.logger.Info("permission revoked", "role", role, "permission", permission)
	return nil
}

// Matrix returns every stored grant, for the admin permissions screen.
func (s *Service) Matrix() ([]RolePermission, error) {
	return s.repo.GetAll()
}
