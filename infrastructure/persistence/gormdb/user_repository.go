package gormdb

import (
	"context"

	"foodorder/domain/shared"
	"foodorder/domain/user"
	"foodorder/infrastructure/persistence/gormdb/po"

	"gorm.io/gorm"
)

// UserRepository GORM implementation of user.Repository
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	userPO := po.FromUserDomain(u)
	db := conn(ctx, r.db)
	if u.ID() == 0 {
		if err := db.Create(userPO).Error; err != nil {
			return translate("user", shared.KindInternal, err)
		}
		u.SetID(userPO.ID)
		return nil
	}
	if err := db.Save(userPO).Error; err != nil {
		return translate("user", shared.KindInternal, err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var userPO po.UserPO
	if err := conn(ctx, r.db).First(&userPO, "id = ?", id).Error; err != nil {
		return nil, translate("user", shared.KindUserNotFound, err)
	}
	return userPO.ToDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	var userPO po.UserPO
	if err := conn(ctx, r.db).First(&userPO, "email = ?", email.Value()).Error; err != nil {
		return nil, translate("user", shared.KindWrongCredentials, err)
	}
	return userPO.ToDomain(), nil
}

func (r *UserRepository) Taken(ctx context.Context, username string, email user.Email, phone string) (user.Uniqueness, error) {
	db := conn(ctx, r.db)
	var rows []po.UserPO
	err := db.Select("username", "email", "phone_number").
		Where("username = ? OR email = ? OR phone_number = ?", username, email.Value(), phone).
		Find(&rows).Error
	if err != nil {
		return user.Uniqueness{}, translate("user", shared.KindInternal, err)
	}

	var u user.Uniqueness
	for _, row := range rows {
		u.Username = u.Username || row.Username == username
		u.Email = u.Email || row.Email == email.Value()
		u.Phone = u.Phone || row.PhoneNumber == phone
	}
	return u, nil
}

var _ user.Repository = (*UserRepository)(nil)

// ProfileRepository GORM implementation of user.ProfileRepository
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Save(ctx context.Context, p *user.Profile) error {
	profilePO := po.FromProfileDomain(p)
	db := conn(ctx, r.db)
	if p.ID() == 0 {
		if err := db.Create(profilePO).Error; err != nil {
			return translate("profile", shared.KindInternal, err)
		}
		p.SetID(profilePO.ID)
		return nil
	}

	result := db.Model(&po.ProfilePO{}).Where("id = ?", p.ID()).Updates(map[string]interface{}{
		"current_balance": profilePO.CurrentBalance,
		"first_name":      profilePO.FirstName,
		"last_name":       profilePO.LastName,
		"address":         profilePO.Address,
		"updated_at":      profilePO.UpdatedAt,
	})
	if result.Error != nil {
		return translate("profile", shared.KindInternal, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewError(shared.KindProfileNotFound, "profile", "")
	}
	return nil
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID uint) (*user.Profile, error) {
	db := conn(ctx, r.db)
	var profilePO po.ProfilePO
	if err := locking(ctx, db).First(&profilePO, "user_id = ?", userID).Error; err != nil {
		return nil, translate("profile", shared.KindProfileNotFound, err)
	}
	return profilePO.ToDomain(), nil
}

var _ user.ProfileRepository = (*ProfileRepository)(nil)
