// Package collection assembles the RSE IDAM Simulator collection.
//
// IDAMSimulator builds the full collection from literal data: seven folders
// covering health, OpenID Connect, user management, testing support, PIN
// authentication, the deprecated OAuth2 endpoints and session management.
package collection

const (
	// Name is the collection name shown by Postman
	Name = "RSE IDAM Simulator"

	// FileName is the name of the generated collection file
	FileName = "rse-idam-simulator.postman_collection.json"

	description = "IDAM Simulator for testing authentication and authorization"
)

// Folder names, in emission order
const (
	FolderHealth         = "Health"
	FolderOpenID         = "OpenID Connect"
	FolderUserManagement = "User Management"
	FolderTestingSupport = "Testing Support"
	FolderPIN            = "PIN Authentication"
	FolderLegacyOAuth2   = "Legacy OAuth2 (Deprecated)"
	FolderSession        = "Session Management"
)

// legacyBasicAuth is base64("test@test.com:password")
const legacyBasicAuth = "Basic dGVzdEB0ZXN0LmNvbTpwYXNzd29yZA=="

type testAccount struct {
	Email    string        `json:"email"`
	Forename string        `json:"forename"`
	Surname  string        `json:"surname"`
	Roles    []accountRole `json:"roles"`
}

type accountRole struct {
	Code string `json:"code"`
}

type pinRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// IDAMSimulator returns the collection for the RSE IDAM Simulator. Every call
// builds a fresh tree with identical contents.
func IDAMSimulator() *Collection {
	return &Collection{
		Info: Info{
			Name:        Name,
			Description: description,
			Schema:      SchemaURL,
		},
		Variables: []Variable{
			{Key: "baseUrl", Value: "http://localhost:5000", Type: "string"},
			{Key: "clientId", Value: "testClient", Type: "string"},
			{Key: "clientSecret", Value: "testSecret", Type: "string"},
			{Key: "redirectUri", Value: "http://localhost:3000/callback", Type: "string"},
		},
		Folders: []Folder{
			healthFolder(),
			openIDFolder(),
			userManagementFolder(),
			testingSupportFolder(),
			pinFolder(),
			legacyOAuth2Folder(),
			sessionFolder(),
		},
	}
}

func healthFolder() Folder {
	return Folder{
		Name: FolderHealth,
		Items: []Item{
			{
				Name: "Health Check",
				Events: testEvent(
					statusTest(200),
					jsonTest("Response has status UP", lines(
						hasProperties("status"),
						[]string{`pm.expect(jsonData.status).to.eql("UP");`},
					)...),
				),
				Request: Request{
					Method: "GET",
					Header: noHeaders(),
					URL:    newURL("/health"),
				},
			},
		},
	}
}

func openIDFolder() Folder {
	return Folder{
		Name: FolderOpenID,
		Items: []Item{
			{
				Name: "Get OpenID Configuration",
				Events: testEvent(
					statusTest(200),
					jsonTest("Response has OpenID config", hasProperties(
						"issuer",
						"authorization_endpoint",
						"token_endpoint",
						"userinfo_endpoint",
						"jwks_uri",
					)...),
				),
				Request: Request{
					Method: "GET",
					Header: noHeaders(),
					URL:    newURL("/o/.well-known/openid-configuration"),
				},
			},
			{
				Name: "Get JSON Web Key Set",
				Events: testEvent(
					statusTest(200),
					jsonTest("Response has JWKS", lines(
						hasProperties("keys"),
						[]string{`pm.expect(jsonData.keys).to.be.an("array");`},
					)...),
				),
				Request: Request{
					Method: "GET",
					Header: noHeaders(),
					URL:    newURL("/o/jwks"),
				},
			},
			{
				Name: "Authorize (POST)",
				Events: testEvent(
					statusTest(302),
					locationHasCode(
						"",
						"// Extract and save the authorization code",
						"var code = location.match(/code=([^&]+)/)[1];",
						saveVar("authCode", "code"),
					),
				),
				Request: Request{
					Method: "POST",
					Header: []Header{formContentType()},
					Body: formBody(
						kv("client_id", "{{clientId}}"),
						kv("redirect_uri", "{{redirectUri}}"),
						kv("response_type", "code"),
						kv("state", "random-state-value"),
					),
					URL: newURL("/o/authorize"),
				},
			},
			{
				Name: "Get Token",
				Events: testEvent(
					statusTest(200),
					jsonTest("Response has tokens", lines(
						hasProperties("access_token", "id_token", "refresh_token", "token_type"),
						[]string{
							`pm.expect(jsonData.token_type).to.eql("Bearer");`,
							"",
							"// Save the access token for subsequent requests",
							saveVar("accessToken", "jsonData.access_token"),
						},
					)...),
				),
				Request: Request{
					Method: "POST",
					Header: []Header{formContentType()},
					Body: formBody(
						kv("client_id", "{{clientId}}"),
						kv("client_secret", "{{clientSecret}}"),
						kv("grant_type", "password"),
						kv("username", "test@example.com"),
						kv("password", "password"),
						kv("scope", "openid profile roles"),
					),
					URL: newURL("/o/token"),
				},
			},
			{
				Name: "Get User Info",
				Events: testEvent(
					statusTest(200),
					jsonTest("Response has user info", hasProperties("sub", "email", "name", "uid", "roles")...),
				),
				Request: Request{
					Method: "GET",
					Header: []Header{bearerAuth()},
					URL:    newURL("/o/userinfo"),
				},
			},
		},
	}
}

func userManagementFolder() Folder {
	return Folder{
		Name: FolderUserManagement,
		Items: []Item{
			{
				Name: "Get User Details by ID",
				Events: testEvent(
					statusTest(200),
					jsonTest("Response has user details", hasProperties("id", "email", "forename", "surname", "roles")...),
				),
				Request: Request{
					Method: "GET",
					Header: []Header{bearerAuth()},
					URL:    newURL("/api/v1/users/{{userId}}"),
				},
			},
			{
				Name: "Search Users",
				Events: testEvent(
					statusTest(200),
					jsonTest("Response is array of users", `pm.expect(jsonData).to.be.an("array");`),
				),
				Request: Request{
					Method: "GET",
					Header: []Header{bearerAuth()},
					URL:    newURL("/api/v1/users", kv("query", "email:test@example.com")),
				},
			},
		},
	}
}

func testingSupportFolder() Folder {
	return Folder{
		Name: FolderTestingSupport,
		Items: []Item{
			{
				Name: "Create Test User",
				Events: testEvent(
					statusTest(200),
					jsonTest("Response has user ID", lines(
						hasProperties("id"),
						[]string{saveVar("userId", "jsonData.id")},
					)...),
				),
				Request: Request{
					Method: "POST",
					Header: []Header{jsonContentType()},
					Body: jsonBody(testAccount{
						Email:    "testuser@example.com",
						Forename: "Test",
						Surname:  "User",
						Roles:    []accountRole{{Code: "citizen"}},
					}),
					URL: newURL("/testing-support/accounts"),
				},
			},
			{
				Name: "Get User by Email",
				Events: testEvent(
					statusTest(200),
					jsonTest("Response has user details", hasProperties("email", "id")...),
				),
				Request: Request{
					Method: "GET",
					Header: noHeaders(),
					URL:    newURL("/testing-support/accounts", kv("email", "testuser@example.com")),
				},
			},
		},
	}
}

func pinFolder() Folder {
	return Folder{
		Name: FolderPIN,
		Items: []Item{
			{
				Name: "Generate PIN",
				Events: testEvent(
					statusTest(200),
					jsonTest("Response has PIN", lines(
						hasProperties("pin"),
						[]string{saveVar("pin", "jsonData.pin")},
					)...),
				),
				Request: Request{
					Method: "POST",
					Header: []Header{jsonContentType()},
					Body:   jsonBody(pinRequest{FirstName: "John", LastName: "Doe"}),
					URL:    newURL("/pin"),
				},
			},
			{
				Name: "Authenticate with PIN",
				Events: testEvent(
					statusTest(302),
					locationHasCode(),
				),
				Request: Request{
					Method: "GET",
					Header: []Header{
						header("pin", "{{pin}}"),
						formContentType(),
					},
					URL: newURL("/pin",
						kv("client_id", "{{clientId}}"),
						kv("redirect_uri", "{{redirectUri}}"),
						kv("state", "test-state"),
					),
				},
			},
		},
	}
}

func legacyOAuth2Folder() Folder {
	return Folder{
		Name: FolderLegacyOAuth2,
		Items: []Item{
			{
				Name: "OAuth2 Authorize (Deprecated)",
				Events: testEvent(
					statusTest(200),
					jsonTest("Response has code", lines(
						hasProperties("code"),
						[]string{saveVar("oauth2Code", "jsonData.code")},
					)...),
				),
				Request: Request{
					Method: "POST",
					Header: []Header{
						header("Authorization", legacyBasicAuth),
						formContentType(),
					},
					Body: formBody(
						kv("client_id", "{{clientId}}"),
						kv("redirect_uri", "{{redirectUri}}"),
						kv("response_type", "code"),
					),
					URL: newURL("/oauth2/authorize"),
				},
			},
			{
				Name: "OAuth2 Token (Deprecated)",
				Events: testEvent(
					statusTest(200),
					jsonTest("Response has access token", hasProperties("access_token")...),
				),
				Request: Request{
					Method: "POST",
					Header: []Header{formContentType()},
					Body: formBody(
						kv("client_id", "{{clientId}}"),
						kv("client_secret", "{{clientSecret}}"),
						kv("grant_type", "authorization_code"),
						kv("code", "{{oauth2Code}}"),
						kv("redirect_uri", "{{redirectUri}}"),
					),
					URL: newURL("/oauth2/token"),
				},
			},
			{
				Name: "Get Details (Deprecated)",
				Events: testEvent(
					statusTest(200),
					jsonTest("Response has user details", hasProperties("id", "email")...),
				),
				Request: Request{
					Method: "GET",
					Header: []Header{bearerAuth()},
					URL:    newURL("/details"),
				},
			},
		},
	}
}

func sessionFolder() Folder {
	return Folder{
		Name: FolderSession,
		Items: []Item{
			{
				Name:   "Logout",
				Events: testEvent(statusTest(204)),
				Request: Request{
					Method: "DELETE",
					Header: noHeaders(),
					URL:    newURL("/session/{{accessToken}}"),
				},
			},
		},
	}
}
