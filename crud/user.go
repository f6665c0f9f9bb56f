package crud

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"warbler/auth"
	"warbler/domain"
	"warbler/errs"
	"warbler/hash"
)

// UserService manages Users. It also contains the part of the authentication
// system that handles database interactions and token hashing. It's basically
// the "backend" of the auth system, with http/auth.go dealing with requests,
// middleware and cookies being the "frontend". It implements the
// domain.UserService interface.
type UserService struct {
	userValidator
}

// userValidator runs validations on incoming User data.
// On success, it passes the data on to userGorm.
// Otherwise, it returns the error of the validation that has failed.
type userValidator struct {
	hmac   auth.HMAC
	pepper string
	userGorm
}

// userGorm runs CRUD operations on the database using incoming User data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type userGorm struct {
	db *gorm.DB
}

// NewUserService returns an instance of UserService.
func NewUserService(db *gorm.DB, hmacKey, pepper string) *UserService {
	return &UserService{
		userValidator{
			hmac:   auth.NewHMAC(hmacKey),
			pepper: pepper,
			userGorm: userGorm{
				db: db,
			},
		},
	}
}

// Ensure the UserService struct properly implements the domain.UserService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.UserService = &UserService{}

// Signup builds a new User from the submitted credentials. The password is
// validated and bcrypted here; the entity is NOT persisted. Callers pass the
// result to Create once they're done with it, which is also where the
// username and email uniqueness constraints get their say.
func (uv *userValidator) Signup(username, email, password, imageURL string) (*domain.User, error) {
	user := &domain.User{
		Username: username,
		Email:    email,
		Password: password,
		ImageURL: imageURL,
	}
	err := runUserValFns(user,
		uv.passwordRequired,
		uv.passwordBcrypt,
		uv.passwordHashRequired,
		uv.emailNormalize,
		uv.imageDefaults)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create stores the passed in User in a new database record. Colliding
// usernames or emails violate the unique columns and come back as an
// integrity error, detectable with errs.IsIntegrityViolation.
func (uv *userValidator) Create(ctx context.Context, user *domain.User) error {
	err := runUserValFns(user, uv.rememberHmac)
	if err != nil {
		return err
	}
	return uv.userGorm.Create(ctx, user)
}

// Update saves changes to an existing user record. It will hash a remember
// token if one is provided on the user object.
func (uv *userValidator) Update(ctx context.Context, user *domain.User) error {
	err := runUserValFns(user,
		uv.rememberMinBytes,
		uv.rememberHmac)
	if err != nil {
		return err
	}
	return uv.userGorm.Update(ctx, user)
}

// Authenticate checks a submitted username and password for existence and
// correctness. Unknown username and wrong password both come back as
// (nil, nil) - the absent user is the signal, so callers can't tell the two
// apart and neither can whoever is probing the login form. A non-nil error
// means the lookup itself failed.
func (uv *userValidator) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	found, err := uv.userGorm.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !hash.Verify(password+uv.pepper, found.PasswordHash) {
		return nil, nil
	}
	return found, nil
}

// ByRemember runs the HMAC on a user's raw remember token, then passes the
// HASHED token on to userGorm.ByRemember to look it up in the database.
func (uv *userValidator) ByRemember(token string) (*domain.User, error) {
	user := domain.User{
		Remember: token,
	}
	if err := runUserValFns(&user, uv.rememberHmac); err != nil {
		return nil, err
	}
	return uv.userGorm.ByRemember(user.RememberHash)
}

// Delete removes a user record by ID. Owned messages, likes, and both
// directions of follow edges go with it via the ON DELETE CASCADE
// foreign keys.
func (uv *userValidator) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return errs.IdInvalid
	}
	return uv.userGorm.Delete(ctx, id)
}

// runUserValFns runs any number of functions of type userValFn on the passed
// in User object. If none of them returns an error, it returns nil.
// Otherwise, it returns the respective error.
func runUserValFns(user *domain.User, fns ...userValFn) error {
	for _, fn := range fns {
		if err := fn(user); err != nil {
			return err
		}
	}
	return nil
}

// A userValFn is any function that takes in a pointer to a domain.User object
// and returns an error.
type userValFn func(user *domain.User) error

// emailNormalize converts the email to all lowercase and trims its whitespaces.
func (uv *userValidator) emailNormalize(user *domain.User) error {
	user.Email = strings.ToLower(user.Email)
	user.Email = strings.TrimSpace(user.Email)
	return nil
}

// imageDefaults fills in the stock profile images when none were submitted.
func (uv *userValidator) imageDefaults(user *domain.User) error {
	if user.ImageURL == "" {
		user.ImageURL = domain.DefaultImageURL
	}
	if user.HeaderImageURL == "" {
		user.HeaderImageURL = domain.DefaultHeaderImageURL
	}
	return nil
}

// passwordBcrypt hashes a user's password with a predefined pepper, if the
// Password field is not the empty string. It then clears the plaintext on
// the user object in memory.
func (uv *userValidator) passwordBcrypt(user *domain.User) error {
	if user.Password == "" {
		return nil
	}
	hashed, err := hash.Hash(user.Password + uv.pepper)
	if err != nil {
		return err
	}
	user.PasswordHash = hashed
	user.Password = ""
	return nil
}

// passwordHashRequired makes sure that the user's password hash is not the empty string.
func (uv *userValidator) passwordHashRequired(user *domain.User) error {
	if user.PasswordHash == "" {
		return errs.PasswordRequired
	}
	return nil
}

// passwordRequired makes sure that the user's password is not the empty string.
func (uv *userValidator) passwordRequired(user *domain.User) error {
	if user.Password == "" {
		return errs.PasswordRequired
	}
	return nil
}

// rememberHmac creates the user's remember token hash, if a raw remember
// token has been provided.
func (uv *userValidator) rememberHmac(user *domain.User) error {
	if user.Remember == "" {
		return nil
	}
	user.RememberHash = uv.hmac.Hash(user.Remember)
	return nil
}

// rememberMinBytes makes sure that the user's remember token is not too short.
func (uv *userValidator) rememberMinBytes(user *domain.User) error {
	if user.Remember == "" {
		return nil
	}
	n, err := auth.NBytes(user.Remember)
	if err != nil {
		return err
	}
	if n < auth.RememberTokenBytes {
		return errs.RememberTooShort
	}
	return nil
}

// ByID retrieves a User database record by ID.
func (ug *userGorm) ByID(ctx context.Context, id int) (*domain.User, error) {
	var user domain.User
	err := ug.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound
		}
		return nil, err
	}
	return &user, nil
}

// ByUsername retrieves a User database record by username.
func (ug *userGorm) ByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := ug.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound
		}
		return nil, err
	}
	return &user, nil
}

// ByRemember retrieves a User database record by its hashed remember token.
// The checkUser middleware calls this on every request, trying to identify a
// user by matching a request cookie's remember token to a hashed remember
// token in the database.
func (ug *userGorm) ByRemember(rememberHash string) (*domain.User, error) {
	var user domain.User
	err := ug.db.Where("remember_hash = ?", rememberHash).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound
		}
		return nil, err
	}
	return &user, nil
}

// Search retrieves users whose username contains q, ordered by username.
// An empty q lists everyone, which is what the users index page shows.
func (ug *userGorm) Search(ctx context.Context, q string) ([]domain.User, error) {
	var users []domain.User
	db := ug.db.WithContext(ctx).Order("username")
	if q != "" {
		db = db.Where("username LIKE ?", "%"+q+"%")
	}
	err := db.Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Create stores the data from the User object in a new database record.
func (ug *userGorm) Create(ctx context.Context, user *domain.User) error {
	return ug.db.WithContext(ctx).Create(user).Error
}

// Update saves changes to an existing user record in the database.
func (ug *userGorm) Update(ctx context.Context, user *domain.User) error {
	return ug.db.WithContext(ctx).Save(user).Error
}

// Delete removes a user record. Dependent rows are cleaned up by the
// store's cascading foreign keys, not here.
func (ug *userGorm) Delete(ctx context.Context, id int) error {
	return ug.db.WithContext(ctx).Delete(&domain.User{}, id).Error
}
