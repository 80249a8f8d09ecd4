package glpi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcp-cau/glpi-gateway/internal/domain"
)

func TestAuthenticateUserOK(t *testing.T) {
	fake := newFakeGLPI(t)
	fake.users = []fakeUser{{ID: 42, Name: "José Silva", Login: "jsilva", Email: "jsilva@example.com", Pass: "s3cret"}}
	client := fake.client()

	result, err := client.AuthenticateUser(context.Background(), "jsilva", "s3cret", "")
	require.NoError(t, err)
	assert.Equal(t, domain.AuthStatusOK, result.Status)
	require.NotNil(t, result.UserID)
	assert.Equal(t, 42, *result.UserID)
	assert.Equal(t, "jsilva", result.Login)
	assert.Equal(t, "José Silva", result.Name)
	assert.Equal(t, "jsilva@example.com", result.Email)
	assert.True(t, result.LogoutVerified)
}

func TestAuthenticateUserIsSessionIsolated(t *testing.T) {
	fake := newFakeGLPI(t)
	fake.users = []fakeUser{{ID: 42, Login: "jsilva", Email: "jsilva@example.com", Pass: "s3cret"}}
	client := fake.client()

	result, err := client.AuthenticateUser(context.Background(), "jsilva", "s3cret", "")
	require.NoError(t, err)
	require.Equal(t, domain.AuthStatusOK, result.Status)

	// Every session opened during the flow must be dead afterwards.
	for token, active := range fake.active {
		assert.False(t, active, "session %s still active", token)
	}
}

func TestAuthenticateUserWrongPassword(t *testing.T) {
	fake := newFakeGLPI(t)
	fake.users = []fakeUser{{ID: 42, Login: "jsilva", Pass: "s3cret"}}
	client := fake.client()

	result, err := client.AuthenticateUser(context.Background(), "jsilva", "wrong", "")
	require.NoError(t, err)
	assert.Equal(t, domain.AuthStatusUnauthorized, result.Status)
	assert.Contains(t, result.Reason, "Incorrect")
	assert.False(t, result.LogoutVerified)
}

func TestAuthenticateUserTOTPRequired(t *testing.T) {
	fake := newFakeGLPI(t)
	fake.users = []fakeUser{{ID: 42, Login: "jsilva", Pass: "s3cret", TOTP: true}}
	client := fake.client()

	result, err := client.AuthenticateUser(context.Background(), "jsilva", "s3cret", "")
	require.NoError(t, err)
	assert.Equal(t, domain.AuthStatusTOTPRequired, result.Status)
	assert.Contains(t, result.Reason, "TOTP")
}

func TestAuthenticateUserWithTOTPCode(t *testing.T) {
	fake := newFakeGLPI(t)
	fake.users = []fakeUser{{ID: 42, Login: "jsilva", Email: "jsilva@example.com", Pass: "s3cret", TOTP: true}}
	client := fake.client()

	result, err := client.AuthenticateUser(context.Background(), "jsilva", "s3cret", "654321")
	require.NoError(t, err)
	assert.Equal(t, domain.AuthStatusOK, result.Status)
}

func TestAuthenticateUserLogoutProbeFailure(t *testing.T) {
	fake := newFakeGLPI(t)
	fake.users = []fakeUser{{ID: 42, Login: "jsilva", Email: "jsilva@example.com", Pass: "s3cret"}}
	fake.failKill = true
	client := fake.client()

	// Teardown failing is advisory: the credential check still reports ok.
	result, err := client.AuthenticateUser(context.Background(), "jsilva", "s3cret", "")
	require.NoError(t, err)
	assert.Equal(t, domain.AuthStatusOK, result.Status)
	assert.False(t, result.LogoutVerified)
}

func TestAuthenticateUserMissingArguments(t *testing.T) {
	client := newFakeGLPI(t).client()

	_, err := client.AuthenticateUser(context.Background(), "", "pw", "")
	assert.Error(t, err)

	_, err = client.AuthenticateUser(context.Background(), "jsilva", "", "")
	assert.Error(t, err)
}
