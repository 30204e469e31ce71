package collection

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDAMSimulatorFolders(t *testing.T) {
	c := IDAMSimulator()

	names := make([]string, len(c.Folders))
	for i, f := range c.Folders {
		names[i] = f.Name
	}
	assert.Equal(t, []string{
		"Health",
		"OpenID Connect",
		"User Management",
		"Testing Support",
		"PIN Authentication",
		"Legacy OAuth2 (Deprecated)",
		"Session Management",
	}, names)
	assert.Equal(t, 16, c.ItemCount())
}

func TestIDAMSimulatorEndpoints(t *testing.T) {
	tests := []struct {
		folder string
		item   string
		method string
		raw    string
		status string
	}{
		{FolderHealth, "Health Check", "GET", "{{baseUrl}}/health", "200"},
		{FolderOpenID, "Get OpenID Configuration", "GET", "{{baseUrl}}/o/.well-known/openid-configuration", "200"},
		{FolderOpenID, "Get JSON Web Key Set", "GET", "{{baseUrl}}/o/jwks", "200"},
		{FolderOpenID, "Authorize (POST)", "POST", "{{baseUrl}}/o/authorize", "302"},
		{FolderOpenID, "Get Token", "POST", "{{baseUrl}}/o/token", "200"},
		{FolderOpenID, "Get User Info", "GET", "{{baseUrl}}/o/userinfo", "200"},
		{FolderUserManagement, "Get User Details by ID", "GET", "{{baseUrl}}/api/v1/users/{{userId}}", "200"},
		{FolderUserManagement, "Search Users", "GET", "{{baseUrl}}/api/v1/users?query=email:test@example.com", "200"},
		{FolderTestingSupport, "Create Test User", "POST", "{{baseUrl}}/testing-support/accounts", "200"},
		{FolderTestingSupport, "Get User by Email", "GET", "{{baseUrl}}/testing-support/accounts?email=testuser@example.com", "200"},
		{FolderPIN, "Generate PIN", "POST", "{{baseUrl}}/pin", "200"},
		{FolderPIN, "Authenticate with PIN", "GET", "{{baseUrl}}/pin?client_id={{clientId}}&redirect_uri={{redirectUri}}&state=test-state", "302"},
		{FolderLegacyOAuth2, "OAuth2 Authorize (Deprecated)", "POST", "{{baseUrl}}/oauth2/authorize", "200"},
		{FolderLegacyOAuth2, "OAuth2 Token (Deprecated)", "POST", "{{baseUrl}}/oauth2/token", "200"},
		{FolderLegacyOAuth2, "Get Details (Deprecated)", "GET", "{{baseUrl}}/details", "200"},
		{FolderSession, "Logout", "DELETE", "{{baseUrl}}/session/{{accessToken}}", "204"},
	}

	c := IDAMSimulator()
	idx := map[string]int{}
	for _, tt := range tests {
		t.Run(tt.folder+"/"+tt.item, func(t *testing.T) {
			f := c.Folder(tt.folder)
			require.NotNil(t, f)

			// Items appear in table order within each folder
			pos := idx[tt.folder]
			idx[tt.folder]++
			require.Less(t, pos, len(f.Items))
			item := f.Items[pos]

			assert.Equal(t, tt.item, item.Name)
			assert.Equal(t, tt.method, item.Request.Method)
			assert.Equal(t, tt.raw, item.Request.URL.Raw)
			assert.Equal(t, []string{BaseURLVar}, item.Request.URL.Host)
			assert.NotNil(t, item.Request.Header)

			require.Len(t, item.Events, 1)
			assert.Equal(t, "test", item.Events[0].Listen)
			exec := item.Events[0].Script.Exec
			assert.Equal(t, "pm.test(\"Status code is "+tt.status+"\", function () {", exec[0])
			assert.Equal(t, "    pm.response.to.have.status("+tt.status+");", exec[1])
		})
	}

	for _, f := range c.Folders {
		assert.Equal(t, idx[f.Name], len(f.Items), "item count for %s", f.Name)
	}
}

func TestIDAMSimulatorVariables(t *testing.T) {
	c := IDAMSimulator()

	require.Len(t, c.Variables, 4)
	keys := make([]string, len(c.Variables))
	for i, v := range c.Variables {
		keys[i] = v.Key
		assert.Equal(t, "string", v.Type)
	}
	assert.Equal(t, []string{"baseUrl", "clientId", "clientSecret", "redirectUri"}, keys)
	assert.Equal(t, "http://localhost:5000", c.Variables[0].Value)
}

func TestIDAMSimulatorCapturedVariables(t *testing.T) {
	tests := []struct {
		folder  string
		item    string
		capture string
	}{
		{FolderOpenID, "Authorize (POST)", `pm.environment.set("authCode", code);`},
		{FolderOpenID, "Get Token", `pm.environment.set("accessToken", jsonData.access_token);`},
		{FolderTestingSupport, "Create Test User", `pm.environment.set("userId", jsonData.id);`},
		{FolderPIN, "Generate PIN", `pm.environment.set("pin", jsonData.pin);`},
		{FolderLegacyOAuth2, "OAuth2 Authorize (Deprecated)", `pm.environment.set("oauth2Code", jsonData.code);`},
	}

	c := IDAMSimulator()
	for _, tt := range tests {
		t.Run(tt.item, func(t *testing.T) {
			item := findItem(t, c, tt.folder, tt.item)
			script := strings.Join(item.Events[0].Script.Exec, "\n")
			assert.Contains(t, script, tt.capture)
		})
	}
}

func TestIDAMSimulatorBodies(t *testing.T) {
	c := IDAMSimulator()

	t.Run("create test user raw JSON", func(t *testing.T) {
		body := findItem(t, c, FolderTestingSupport, "Create Test User").Request.Body
		require.NotNil(t, body)
		assert.Equal(t, BodyModeRaw, body.Mode)
		assert.Equal(t, `{
  "email": "testuser@example.com",
  "forename": "Test",
  "surname": "User",
  "roles": [
    {
      "code": "citizen"
    }
  ]
}`, body.Raw)
	})

	t.Run("generate pin raw JSON", func(t *testing.T) {
		body := findItem(t, c, FolderPIN, "Generate PIN").Request.Body
		require.NotNil(t, body)
		assert.Equal(t, "{\n  \"firstName\": \"John\",\n  \"lastName\": \"Doe\"\n}", body.Raw)
	})

	t.Run("token form", func(t *testing.T) {
		body := findItem(t, c, FolderOpenID, "Get Token").Request.Body
		require.NotNil(t, body)
		assert.Equal(t, BodyModeURLEncoded, body.Mode)
		assert.Equal(t, []KeyValue{
			{Key: "client_id", Value: "{{clientId}}"},
			{Key: "client_secret", Value: "{{clientSecret}}"},
			{Key: "grant_type", Value: "password"},
			{Key: "username", Value: "test@example.com"},
			{Key: "password", Value: "password"},
			{Key: "scope", Value: "openid profile roles"},
		}, body.URLEncoded)
	})

	t.Run("GET requests have no body", func(t *testing.T) {
		for _, f := range c.Folders {
			for _, item := range f.Items {
				if item.Request.Method == "GET" || item.Request.Method == "DELETE" {
					assert.Nil(t, item.Request.Body, item.Name)
				}
			}
		}
	})
}

func TestIDAMSimulatorHeaders(t *testing.T) {
	c := IDAMSimulator()

	pin := findItem(t, c, FolderPIN, "Authenticate with PIN")
	assert.Equal(t, []Header{
		{Key: "pin", Value: "{{pin}}"},
		{Key: "Content-Type", Value: "application/x-www-form-urlencoded"},
	}, pin.Request.Header)

	legacy := findItem(t, c, FolderLegacyOAuth2, "OAuth2 Authorize (Deprecated)")
	require.Len(t, legacy.Request.Header, 2)
	assert.Equal(t, "Basic dGVzdEB0ZXN0LmNvbTpwYXNzd29yZA==", legacy.Request.Header[0].Value)

	userInfo := findItem(t, c, FolderOpenID, "Get User Info")
	assert.Equal(t, []Header{{Key: "Authorization", Value: "Bearer {{accessToken}}"}}, userInfo.Request.Header)

	health := findItem(t, c, FolderHealth, "Health Check")
	assert.Empty(t, health.Request.Header)
}

func TestIDAMSimulatorFreshTree(t *testing.T) {
	a := IDAMSimulator()
	b := IDAMSimulator()
	assert.Equal(t, a, b)

	a.Folders[0].Name = "changed"
	assert.Equal(t, FolderHealth, b.Folders[0].Name)
}

func findItem(t *testing.T, c *Collection, folder, name string) Item {
	t.Helper()
	f := c.Folder(folder)
	require.NotNil(t, f, "folder %s", folder)
	for _, item := range f.Items {
		if item.Name == name {
			return item
		}
	}
	require.FailNow(t, "item not found", "%s/%s", folder, name)
	return Item{}
}
