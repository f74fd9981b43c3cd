package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/pos/internal/api/dto"
	"github.com/RoyceAzure/lab/pos/internal/pkg/api"
	"github.com/RoyceAzure/lab/pos/internal/service"
)

type MemberHandler struct {
	memberService service.IMemberService
}

func NewMemberHandler(memberService service.IMemberService) *MemberHandler {
	if memberService == nil {
		panic("memberService cannot be nil")
	}
	return &MemberHandler{memberService: memberService}
}

func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.memberService.ListMembers(r.Context())
	if err != nil {
		api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to list members")
		return
	}

	out := make([]dto.MemberDTO, 0, len(members))
	for _, m := range members {
		out = append(out, dto.ConvertMemberToDTO(m))
	}
	api.SuccessJSON(w, out, map[string]any{"count": len(out)})
}

func (h *MemberHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := parseUintParam(r, "memberID")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err, "invalid member id")
		return
	}

	member, err := h.memberService.GetMember(r.Context(), memberID)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotExist) {
			api.ErrorJSON(w, http.StatusNotFound, err, "member not found")
		} else {
			api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to get member")
		}
		return
	}
	api.SuccessJSON(w, dto.ConvertMemberToDTO(member), nil)
}

func (h *MemberHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMemberDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err, "invalid request body")
		return
	}
	if req.Name == "" {
		api.ErrorJSON(w, http.StatusBadRequest, nil, "member name is required")
		return
	}

	member := req.ToModel()
	if err := h.memberService.CreateMember(r.Context(), member); err != nil {
		api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to create member")
		return
	}
	api.SuccessJSON(w, dto.ConvertMemberToDTO(member.ToDomain()), nil)
}

func (h *MemberHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := parseUintParam(r, "memberID")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err, "invalid member id")
		return
	}

	if err := h.memberService.DeleteMember(r.Context(), memberID); err != nil {
		if errors.Is(err, service.ErrMemberNotExist) {
			api.ErrorJSON(w, http.StatusNotFound, err, "member not found")
		} else {
			api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to delete member")
		}
		return
	}
	api.SuccessJSON(w, map[string]uint{"member_id": memberID}, nil)
}
