package dto

import (
	domain "github.com/RoyceAzure/lab/pos/internal/domain/model"
	dbmodel "github.com/RoyceAzure/lab/pos/internal/infra/repository/db/model"
)

type MemberDTO struct {
	MemberID uint   `json:"member_id"`
	Name     string `json:"name"`
	IsWalkIn bool   `json:"is_walk_in"`
}

type CreateMemberDTO struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Note  string `json:"note"`
}

func ConvertMemberToDTO(m domain.Member) MemberDTO {
	return MemberDTO{
		MemberID: m.MemberID,
		Name:     m.Name,
		IsWalkIn: m.IsWalkIn(),
	}
}

func (d *CreateMemberDTO) ToModel() *dbmodel.Member {
	return &dbmodel.Member{
		Name:  d.Name,
		Phone: d.Phone,
		Note:  d.Note,
	}
}
