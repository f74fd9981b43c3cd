package service

import (
	"context"
	"errors"

	domain "github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db"
	dbmodel "github.com/RoyceAzure/lab/pos/internal/infra/repository/db/model"
)

var (
	ErrMemberNotExist = errors.New("member is not exist")
)

type IMemberService interface {
	GetMember(ctx context.Context, memberID uint) (domain.Member, error)
	ListMembers(ctx context.Context) ([]domain.Member, error)
	CreateMember(ctx context.Context, member *dbmodel.Member) error
	DeleteMember(ctx context.Context, memberID uint) error
}

type MemberService struct {
	memberRepo db.IMemberRepository
}

func NewMemberService(memberRepo db.IMemberRepository) *MemberService {
	return &MemberService{memberRepo: memberRepo}
}

// GetMember ID 0 永遠是walk-in，不查DB
func (s *MemberService) GetMember(ctx context.Context, memberID uint) (domain.Member, error) {
	if memberID == domain.WalkInMemberID {
		return domain.WalkInMember(), nil
	}
	record, err := s.memberRepo.GetMemberByID(ctx, memberID)
	if errors.Is(err, db.ErrMemberNotFound) {
		return domain.Member{}, ErrMemberNotExist
	}
	if err != nil {
		return domain.Member{}, err
	}
	return record.ToDomain(), nil
}

// ListMembers 會員選單，walk-in固定排第一個
func (s *MemberService) ListMembers(ctx context.Context) ([]domain.Member, error) {
	records, err := s.memberRepo.GetAllMembers(ctx)
	if err != nil {
		return nil, err
	}

	members := make([]domain.Member, 0, len(records)+1)
	members = append(members, domain.WalkInMember())
	for i := range records {
		members = append(members, records[i].ToDomain())
	}
	return members, nil
}

func (s *MemberService) CreateMember(ctx context.Context, member *dbmodel.Member) error {
	return s.memberRepo.CreateMember(ctx, member)
}

// DeleteMember walk-in是虛擬會員，不可刪除
func (s *MemberService) DeleteMember(ctx context.Context, memberID uint) error {
	if memberID == domain.WalkInMemberID {
		return ErrMemberNotExist
	}
	if _, err := s.memberRepo.GetMemberByID(ctx, memberID); err != nil {
		if errors.Is(err, db.ErrMemberNotFound) {
			return ErrMemberNotExist
		}
		return err
	}
	return s.memberRepo.DeleteMember(ctx, memberID)
}
