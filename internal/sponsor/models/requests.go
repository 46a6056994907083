package models

import (
	"strings"

	"weddingapi/pkg/validation"
)

// CreateRequest is the body of POST /api/principal-sponsor.
type CreateRequest struct {
	MalePrincipalSponsor   string `json:"MalePrincipalSponsor" validate:"required"`
	FemalePrincipalSponsor string `json:"FemalePrincipalSponsor"`
}

func (r *CreateRequest) Validate() error {
	return validation.Validate(r)
}

// Normalize trims both names. A missing female name is already "".
func (r *CreateRequest) Normalize() {
	r.MalePrincipalSponsor = strings.TrimSpace(r.MalePrincipalSponsor)
	r.FemalePrincipalSponsor = strings.TrimSpace(r.FemalePrincipalSponsor)
}

// UpdateRequest is the body of PUT /api/principal-sponsor. OriginalName
// identifies the row to rewrite; when it is absent the incoming male name is
// used, which only finds the row if the male name did not change.
type UpdateRequest struct {
	MalePrincipalSponsor   string `json:"MalePrincipalSponsor" validate:"required"`
	FemalePrincipalSponsor string `json:"FemalePrincipalSponsor"`
	OriginalName           string `json:"originalName"`
}

func (r *UpdateRequest) Validate() error {
	return validation.Validate(r)
}

// Normalize resolves the lookup key from the untrimmed male name, then trims
// the new values. OriginalName itself is forwarded exactly as sent.
func (r *UpdateRequest) Normalize() {
	if r.OriginalName == "" {
		r.OriginalName = r.MalePrincipalSponsor
	}
	r.MalePrincipalSponsor = strings.TrimSpace(r.MalePrincipalSponsor)
	r.FemalePrincipalSponsor = strings.TrimSpace(r.FemalePrincipalSponsor)
}

// DeleteRequest is the body of DELETE /api/principal-sponsor. The male name is
// the row identity.
type DeleteRequest struct {
	MalePrincipalSponsor string `json:"MalePrincipalSponsor" validate:"required"`
}

func (r *DeleteRequest) Validate() error {
	return validation.Validate(r)
}

func (r *DeleteRequest) Normalize() {
	r.MalePrincipalSponsor = strings.TrimSpace(r.MalePrincipalSponsor)
}

// Remote write payloads. Action is omitted for creates.
const (
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// CreatePayload is forwarded to the remote store for a create.
type CreatePayload struct {
	MalePrincipalSponsor   string `json:"MalePrincipalSponsor"`
	FemalePrincipalSponsor string `json:"FemalePrincipalSponsor"`
}

// UpdatePayload is forwarded to the remote store for an update.
type UpdatePayload struct {
	Action                 string `json:"action"`
	OriginalName           string `json:"originalName"`
	MalePrincipalSponsor   string `json:"MalePrincipalSponsor"`
	FemalePrincipalSponsor string `json:"FemalePrincipalSponsor"`
}

// DeletePayload is forwarded to the remote store for a delete.
type DeletePayload struct {
	Action               string `json:"action"`
	MalePrincipalSponsor string `json:"MalePrincipalSponsor"`
}

func (r *CreateRequest) Payload() CreatePayload {
	return CreatePayload{
		MalePrincipalSponsor:   r.MalePrincipalSponsor,
		FemalePrincipalSponsor: r.FemalePrincipalSponsor,
	}
}

func (r *UpdateRequest) Payload() UpdatePayload {
	return UpdatePayload{
		Action:                 ActionUpdate,
		OriginalName:           r.OriginalName,
		MalePrincipalSponsor:   r.MalePrincipalSponsor,
		FemalePrincipalSponsor: r.FemalePrincipalSponsor,
	}
}

func (r *DeleteRequest) Payload() DeletePayload {
	return DeletePayload{
		Action:               ActionDelete,
		MalePrincipalSponsor: r.MalePrincipalSponsor,
	}
}
