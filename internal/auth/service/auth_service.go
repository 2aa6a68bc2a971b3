package service

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"

	commoncrypto "github.com/realtyhub/backend/internal/common/crypto"
	"github.com/realtyhub/backend/internal/common/db"
	"github.com/realtyhub/backend/internal/common/logger"
	"github.com/realtyhub/backend/internal/observability/metrics"
	"github.com/realtyhub/backend/internal/user/domain"
	userrepo "github.com/realtyhub/backend/internal/user/repository"
)

var validate = validator.New()

const maxConcurrentHashes = 8

type AuthService struct {
	repo   userrepo.Repository
	txm    userrepo.TxManager
	hasher commoncrypto.PasswordHasher
	ids    commoncrypto.IDGenerator
	issuer *TokenIssuer
	log    *logger.Logger
}

type AuthServiceDeps struct {
	Repo        userrepo.Repository
	TxManager   userrepo.TxManager
	Hasher      commoncrypto.PasswordHasher
	IDGenerator commoncrypto.IDGenerator
	Issuer      *TokenIssuer
	Log         *logger.Logger
}

func NewAuthService(deps AuthServiceDeps) *AuthService {
	txm := deps.TxManager
	if txm == nil {
		txm = deps.Repo.TxManager()
	}
	return &AuthService{
		repo:   deps.Repo,
		txm:    txm,
		hasher: deps.Hasher,
		ids:    deps.IDGenerator,
		issuer: deps.Issuer,
		log:    deps.Log,
	}
}

type SignInInput struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

type SignUpInput struct {
	FullName string `validate:"required"`
	Email    string `validate:"required,email"`
	Address  string `validate:"required"`
	Password string `validate:"required"`
}

type SignInResult struct {
	User  domain.Summary
	Token string
}

type BulkResult struct {
	Count int
	Users []domain.Summary
}

func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (SignInResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "signin_attempt",
	}).Info("signin attempt")

	if err := validate.Struct(input); err != nil {
		metrics.SigninsTotal.WithLabelValues("invalid_credentials").Inc()
		return SignInResult{}, ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "signin_user_not_found",
			}).Warn("signin failed: not found")
			metrics.SigninsTotal.WithLabelValues("invalid_credentials").Inc()
			return SignInResult{}, ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signin_fetch_failed",
		}).Errorf("signin failed: %v", err)
		metrics.SigninsTotal.WithLabelValues("error").Inc()
		return SignInResult{}, internalError(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signin_invalid_password",
		}).Warn("signin failed: invalid password")
		metrics.SigninsTotal.WithLabelValues("invalid_credentials").Inc()
		return SignInResult{}, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":   input.Email,
			"user_id": string(user.ID),
			"action":  "signin_token_issue_failed",
		}).Errorf("signin failed: token issue error: %v", err)
		metrics.SigninsTotal.WithLabelValues("error").Inc()
		return SignInResult{}, internalError(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.ID),
		"action":  "signin_success",
	}).Info("signin success")
	metrics.SigninsTotal.WithLabelValues("success").Inc()

	return SignInResult{
		User:  user.Summary(),
		Token: token,
	}, nil
}

func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (domain.Summary, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "signup_attempt",
	}).Info("signup attempt")

	if err := validate.Struct(input); err != nil {
		metrics.SignupsTotal.WithLabelValues("invalid_input").Inc()
		return domain.Summary{}, ErrValidation.WithCause(err)
	}

	var created domain.Summary
	err := s.txm.WithTx(ctx, func(ctx context.Context, tx userrepo.Tx) error {
		exists, err := tx.EmailExists(ctx, input.Email)
		if err != nil {
			return err
		}
		if exists {
			return ErrEmailTaken
		}

		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return err
		}

		id, err := s.ids.NewID()
		if err != nil {
			return err
		}

		created, err = tx.Insert(ctx, domain.NewUser{
			ID:           domain.ID(id),
			FullName:     input.FullName,
			Email:        input.Email,
			Address:      input.Address,
			PasswordHash: hash,
		})
		return err
	})
	if err != nil {
		return domain.Summary{}, s.classifySignupError(ctx, logger.Fields{"email": input.Email}, err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":   created.Email,
		"user_id": string(created.ID),
		"action":  "signup_success",
	}).Info("signup success")
	metrics.SignupsTotal.WithLabelValues("success").Inc()

	return created, nil
}

func (s *AuthService) SignUpBulk(ctx context.Context, inputs []SignUpInput) (BulkResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"count":  len(inputs),
		"action": "bulk_signup_attempt",
	}).Info("bulk signup attempt")
	metrics.BulkSignupBatchSize.Observe(float64(len(inputs)))

	if len(inputs) == 0 {
		metrics.SignupsTotal.WithLabelValues("invalid_input").Inc()
		return BulkResult{}, ErrEmptyBatch
	}

	if n := invalidCount(inputs); n > 0 {
		s.log.WithFields(ctx, logger.Fields{
			"invalid_count": n,
			"action":        "bulk_signup_invalid_entries",
		}).Warn("bulk signup failed: invalid entries")
		metrics.SignupsTotal.WithLabelValues("invalid_input").Inc()
		return BulkResult{}, ErrMissingFields.WithDetails(map[string]any{"invalidCount": n})
	}

	if dups := duplicateEmails(inputs); len(dups) > 0 {
		s.log.WithFields(ctx, logger.Fields{
			"duplicates": len(dups),
			"action":     "bulk_signup_duplicate_input",
		}).Warn("bulk signup failed: duplicate emails in request")
		metrics.SignupsTotal.WithLabelValues("duplicate_input").Inc()
		return BulkResult{}, ErrDuplicateInput.WithDetails(map[string]any{"duplicateEmails": dups})
	}

	// Hashing is pure per entry, so it runs concurrently before the
	// transaction opens; no store connection is held during the expensive part.
	hashes, err := s.hashAll(inputs)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return BulkResult{}, internalError(err)
	}

	emails := make([]string, len(inputs))
	for i, in := range inputs {
		emails[i] = in.Email
	}

	var createdUsers []domain.Summary
	err = s.txm.WithTx(ctx, func(ctx context.Context, tx userrepo.Tx) error {
		existing, err := tx.ExistingEmails(ctx, emails)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return ErrEmailsTaken.WithDetails(map[string]any{"existingEmails": existing})
		}

		createdUsers = make([]domain.Summary, 0, len(inputs))
		for i, in := range inputs {
			id, err := s.ids.NewID()
			if err != nil {
				return err
			}

			created, err := tx.Insert(ctx, domain.NewUser{
				ID:           domain.ID(id),
				FullName:     in.FullName,
				Email:        in.Email,
				Address:      in.Address,
				PasswordHash: hashes[i],
			})
			if err != nil {
				return err
			}
			createdUsers = append(createdUsers, created)
		}
		return nil
	})
	if err != nil {
		return BulkResult{}, s.classifySignupError(ctx, logger.Fields{"count": len(inputs)}, err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"count":  len(createdUsers),
		"action": "bulk_signup_success",
	}).Info("bulk signup success")
	metrics.SignupsTotal.WithLabelValues("success").Inc()
	metrics.BulkSignupUsersCreated.Add(float64(len(createdUsers)))

	return BulkResult{
		Count: len(createdUsers),
		Users: createdUsers,
	}, nil
}

// classifySignupError maps transactional failures to the typed taxonomy. The
// unique constraint surfacing mid-insert is the store winning a race the
// pre-check could not see; it is reported as a duplicate email, carrying the
// constraint's detail line so the caller can see which email collided.
func (s *AuthService) classifySignupError(ctx context.Context, fields logger.Fields, err error) error {
	switch {
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrEmailsTaken),
		errors.Is(err, userrepo.ErrEmailExists):
		s.log.WithFields(ctx, withAction(fields, "signup_email_exists")).
			Warn("signup failed: email already registered")
		metrics.SignupsTotal.WithLabelValues("email_taken").Inc()
		if errors.Is(err, userrepo.ErrEmailExists) {
			taken := ErrEmailTaken.WithCause(err)
			if detail := db.UniqueViolationDetail(err); detail != "" {
				taken = taken.WithDetails(map[string]any{"detail": detail})
			}
			return taken
		}
		return err
	default:
		s.log.WithFields(ctx, withAction(fields, "signup_failed")).
			Errorf("signup failed: %v", err)
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return internalError(err)
	}
}

func withAction(fields logger.Fields, action string) logger.Fields {
	out := logger.Fields{"action": action}
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func (s *AuthService) hashAll(inputs []SignUpInput) ([]string, error) {
	hashes := make([]string, len(inputs))
	errs := make([]error, len(inputs))
	sem := make(chan struct{}, maxConcurrentHashes)

	var wg sync.WaitGroup
	for i := range inputs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			hashes[i], errs[i] = s.hasher.Hash(inputs[i].Password)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return hashes, nil
}
