package domainerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorMessage() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeValidation, Message: "MalePrincipalSponsor is required"}
		s.Equal("MalePrincipalSponsor is required", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeUpstreamUnavailable}
		s.Equal("upstream_unavailable", err.Error())
	})
}

func (s *DomainErrorsSuite) TestIsMatchesByCode() {
	err := Upstream("Failed to add principal sponsor", errors.New("dial tcp: refused"))
	s.True(errors.Is(err, &Error{Code: CodeUpstreamUnavailable}))
	s.False(errors.Is(err, &Error{Code: CodeValidation}))
	s.False(errors.Is(err, errors.New("upstream_unavailable")))
}

func (s *DomainErrorsSuite) TestUpstreamKeepsCauseInternal() {
	cause := errors.New("remote returned 502")
	err := Upstream("Failed to delete principal sponsor", cause)

	s.Equal("Failed to delete principal sponsor", err.Error())
	s.ErrorIs(err, cause)
}

func (s *DomainErrorsSuite) TestInvalidCarriesField() {
	err := Invalid("MalePrincipalSponsor", "MalePrincipalSponsor is required")

	var domainErr *Error
	s.Require().True(errors.As(err, &domainErr))
	s.Equal(CodeValidation, domainErr.Code)
	s.Equal("MalePrincipalSponsor", domainErr.Field)
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("preserves original domain code and field", func() {
		original := Invalid("originalName", "originalName must be a string")
		wrapped := Wrap(original, CodeInternal, "update rejected")

		var domainErr *Error
		s.Require().True(errors.As(wrapped, &domainErr))
		s.Equal(CodeValidation, domainErr.Code)
		s.Equal("originalName", domainErr.Field)
		s.Equal("update rejected", domainErr.Message)
	})

	s.Run("uses provided code when wrapping non-domain error", func() {
		original := errors.New("context deadline exceeded")
		wrapped := Wrap(original, CodeInternal, "service error")

		s.True(HasCode(wrapped, CodeInternal))
		s.ErrorIs(wrapped, original)
	})
}

func (s *DomainErrorsSuite) TestHasCode() {
	s.True(HasCode(New(CodeBadRequest, "invalid request body"), CodeBadRequest))
	s.False(HasCode(New(CodeBadRequest, "invalid request body"), CodeInternal))
	s.False(HasCode(errors.New("plain"), CodeInternal))
	s.False(HasCode(nil, CodeInternal))
}
