package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db/model"
	"gorm.io/gorm"
)

var (
	// ErrMemberNotFound 會員不存在
	ErrMemberNotFound = errors.New("member not found")
)

type IMemberRepository interface {
	CreateMember(ctx context.Context, member *model.Member) error
	GetMemberByID(ctx context.Context, memberID uint) (*model.Member, error)
	GetAllMembers(ctx context.Context) ([]model.Member, error)
	DeleteMember(ctx context.Context, memberID uint) error
}

type MemberRepo struct {
	db *DbDao
}

func NewMemberRepo(db *DbDao) *MemberRepo {
	return &MemberRepo{db: db}
}

func (s *MemberRepo) CreateMember(ctx context.Context, member *model.Member) error {
	return s.db.WithContext(ctx).Create(member).Error
}

func (s *MemberRepo) GetMemberByID(ctx context.Context, memberID uint) (*model.Member, error) {
	var member model.Member
	err := s.db.WithContext(ctx).First(&member, "member_id = ?", memberID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *MemberRepo) GetAllMembers(ctx context.Context) ([]model.Member, error) {
	var members []model.Member
	err := s.db.WithContext(ctx).Order("member_id").Find(&members).Error
	return members, err
}

func (s *MemberRepo) DeleteMember(ctx context.Context, memberID uint) error {
	return s.db.WithContext(ctx).Delete(&model.Member{}, "member_id = ?", memberID).Error
}
