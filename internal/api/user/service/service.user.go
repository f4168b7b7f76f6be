package usersvc

import (
	"context"

	userdto "github.com/Aniket1026/yoto/internal/api/user/dto"
	models "github.com/Aniket1026/yoto/internal/api/user/models"
	videomodels "github.com/Aniket1026/yoto/internal/api/video/models"
	"github.com/Aniket1026/yoto/internal/common"
	"github.com/Aniket1026/yoto/internal/logger"
	"github.com/Aniket1026/yoto/internal/media"
	"github.com/Aniket1026/yoto/internal/utility"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userRepository interface {
	InsertOne(ctx context.Context, data models.User) (models.User, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByLogin(ctx context.Context, email, username string) (models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error
	RotateRefreshToken(ctx context.Context, id primitive.ObjectID, oldToken, newToken string) error
	ClearRefreshToken(ctx context.Context, id primitive.ObjectID) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (models.User, error)
}

// TokenIssuer issues and checks the JWT pair.
type TokenIssuer interface {
	IssueAccessToken(userID, email, username string) (string, error)
	IssueRefreshToken(userID string) (string, error)
	VerifyRefreshToken(token string) (*utility.Claims, error)
}

// SubscriptionStats answers the channel profile counters.
type SubscriptionStats interface {
	CountSubscribers(ctx context.Context, channel primitive.ObjectID) (int64, error)
	CountSubscribedTo(ctx context.Context, subscriber primitive.ObjectID) (int64, error)
	IsSubscribed(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error)
}

// VideoResolver loads videos with their owners. A non-nil visibleTo keeps
// only published videos and those owned by visibleTo.
type VideoResolver interface {
	FindWithOwners(ctx context.Context, ids []primitive.ObjectID, visibleTo *primitive.ObjectID) ([]videomodels.VideoWithOwner, error)
}

type mediaUploader interface {
	Upload(ctx context.Context, localPath string, kind media.Kind) *media.UploadResult
	Remove(ctx context.Context, url string)
}

// UserService implements registration, sessions and profile operations.
type UserService struct {
	users    userRepository
	tokens   TokenIssuer
	uploader mediaUploader
	subs     SubscriptionStats
	videos   VideoResolver
	log      *logrus.Entry
}

func NewUserService(users userRepository, tokens TokenIssuer, uploader mediaUploader) *UserService {
	return &UserService{
		users:    users,
		tokens:   tokens,
		uploader: uploader,
		log:      logger.WithModule("user"),
	}
}

// SetSubscriptionStats and SetVideoResolver are set once at start-up; the
// subscription and video services depend on the user store themselves.
func (s *UserService) SetSubscriptionStats(subs SubscriptionStats) { s.subs = subs }

func (s *UserService) SetVideoResolver(videos VideoResolver) { s.videos = videos }

// Register creates an account. The avatar is required, the cover image is not.
func (s *UserService) Register(ctx context.Context, input *userdto.RegisterInput) (*models.User, error) {
	username := NormalizeUsername(input.Username)
	email := NormalizeEmail(input.Email)
	if input.AvatarPath == "" {
		return nil, common.ErrRequiredField.WithMessage("Avatar file is required")
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrDuplicate.WithMessage("User with email or username already exists")
	}

	hash, err := utility.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	avatar := s.uploader.Upload(ctx, input.AvatarPath, media.KindAvatar)
	if avatar == nil {
		return nil, common.ErrUploadFailed.WithMessage("Avatar upload failed")
	}
	var coverURL string
	if input.CoverImagePath != "" {
		if cover := s.uploader.Upload(ctx, input.CoverImagePath, media.KindCover); cover != nil {
			coverURL = cover.URL
		} else {
			s.log.WithField("username", username).Warn("cover image upload failed, registering without it")
		}
	}

	created, err := s.users.InsertOne(ctx, models.User{
		Username:     username,
		Email:        email,
		Fullname:     input.Fullname,
		Avatar:       avatar.URL,
		CoverImage:   coverURL,
		Password:     hash,
		WatchHistory: []primitive.ObjectID{},
	})
	if err != nil {
		s.uploader.Remove(ctx, avatar.URL)
		s.uploader.Remove(ctx, coverURL)
		if common.StatusOf(err) == common.StatusConflict {
			return nil, common.ErrDuplicate.WithMessage("User with email or username already exists")
		}
		return nil, err
	}

	s.log.WithField("user_id", created.ID.Hex()).Info("user registered")
	return &created, nil
}

// Login checks the password and starts a new session, replacing any older one.
func (s *UserService) Login(ctx context.Context, input *userdto.LoginInput) (*userdto.LoginResult, error) {
	user, err := s.users.FindByLogin(ctx, input.Email, input.Username)
	if err != nil {
		if common.StatusOf(err) == common.StatusNotFound {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}

	if !utility.CheckPassword(input.Password, user.Password) {
		logger.LogAuth(logger.AuthLogin, user.ID.Hex(), false, "invalid password")
		return nil, common.ErrInvalidCredentials
	}

	pair, err := s.issuePair(&user)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, err
	}
	logger.LogAuth(logger.AuthLogin, user.ID.Hex(), true, "")

	return &userdto.LoginResult{
		User:         &user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Logout revokes the stored refresh token.
func (s *UserService) Logout(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.users.ClearRefreshToken(ctx, userID); err != nil {
		return err
	}
	logger.LogAuth(logger.AuthLogout, userID.Hex(), true, "")
	return nil
}

// RefreshTokens rotates the session. The presented token must be the stored
// one; the replacement is persisted with a compare-and-replace.
func (s *UserService) RefreshTokens(ctx context.Context, refreshToken string) (*userdto.TokenPair, error) {
	if refreshToken == "" {
		return nil, common.ErrTokenMissing.WithMessage("Refresh token is required")
	}
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	userID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return nil, common.ErrTokenInvalid
	}

	user, err := s.users.FindOneById(ctx, userID)
	if err != nil {
		if common.StatusOf(err) == common.StatusNotFound {
			return nil, common.ErrTokenInvalid
		}
		return nil, err
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		logger.LogAuth(logger.AuthRefresh, userID.Hex(), false, "stale refresh token")
		return nil, common.ErrRefreshTokenReused
	}

	pair, err := s.issuePair(&user)
	if err != nil {
		return nil, err
	}
	if err := s.users.RotateRefreshToken(ctx, userID, refreshToken, pair.RefreshToken); err != nil {
		logger.LogAuth(logger.AuthRefresh, userID.Hex(), false, "rotation lost")
		return nil, err
	}
	logger.LogAuth(logger.AuthRefresh, userID.Hex(), true, "")
	return pair, nil
}

func (s *UserService) issuePair(user *models.User) (*userdto.TokenPair, error) {
	access, err := s.tokens.IssueAccessToken(user.ID.Hex(), user.Email, user.Username)
	if err != nil {
		return nil, common.ErrInternal.WithDetails(err)
	}
	refresh, err := s.tokens.IssueRefreshToken(user.ID.Hex())
	if err != nil {
		return nil, common.ErrInternal.WithDetails(err)
	}
	return &userdto.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ResetPassword requires the current password and ends the session.
func (s *UserService) ResetPassword(ctx context.Context, userID primitive.ObjectID, input *userdto.ResetPasswordInput) error {
	user, err := s.users.FindOneById(ctx, userID)
	if err != nil {
		return err
	}
	if !utility.CheckPassword(input.OldPassword, user.Password) {
		return common.ErrInvalidInput.WithMessage("Invalid old password")
	}
	hash, err := utility.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}
	logger.LogAuth(logger.AuthPasswordReset, userID.Hex(), true, "")
	return nil
}

func (s *UserService) CurrentUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindOneById(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateAccount changes fullname and/or email. A taken email is a Conflict.
func (s *UserService) UpdateAccount(ctx context.Context, userID primitive.ObjectID, input *userdto.UpdateAccountInput) (*models.User, error) {
	fields := map[string]interface{}{}
	if input.Fullname != "" {
		fields["fullname"] = input.Fullname
	}
	if email := NormalizeEmail(input.Email); email != "" {
		fields["email"] = email
	}
	if len(fields) == 0 {
		return nil, common.ErrRequiredField.WithMessage("fullname or email is required")
	}

	user, err := s.users.UpdateFields(ctx, userID, fields)
	if err != nil {
		if common.StatusOf(err) == common.StatusConflict {
			return nil, common.ErrDuplicate.WithMessage("Email is already in use")
		}
		return nil, err
	}
	return &user, nil
}

// UpdateAvatar uploads a new avatar and removes the previous object.
func (s *UserService) UpdateAvatar(ctx context.Context, userID primitive.ObjectID, localPath string) (*models.User, error) {
	return s.replaceImage(ctx, userID, localPath, media.KindAvatar, "avatar")
}

// UpdateCoverImage uploads a new cover image and removes the previous object.
func (s *UserService) UpdateCoverImage(ctx context.Context, userID primitive.ObjectID, localPath string) (*models.User, error) {
	return s.replaceImage(ctx, userID, localPath, media.KindCover, "coverImage")
}

func (s *UserService) replaceImage(ctx context.Context, userID primitive.ObjectID, localPath string, kind media.Kind, field string) (*models.User, error) {
	current, err := s.users.FindOneById(ctx, userID)
	if err != nil {
		return nil, err
	}

	uploaded := s.uploader.Upload(ctx, localPath, kind)
	if uploaded == nil {
		return nil, common.ErrUploadFailed.WithMessage("Error while uploading " + field)
	}

	user, err := s.users.UpdateFields(ctx, userID, map[string]interface{}{field: uploaded.URL})
	if err != nil {
		s.uploader.Remove(ctx, uploaded.URL)
		return nil, err
	}

	old := current.Avatar
	if kind == media.KindCover {
		old = current.CoverImage
	}
	if old != "" && old != uploaded.URL {
		s.uploader.Remove(ctx, old)
	}
	return &user, nil
}
