/*
Package authsdk is a client SDK for the OAuth client-credentials service.

# SDKClient vs Session

  - SDKClient: unauthenticated operations (token, login, health) and session creation
  - Session: operations that need a bearer token

	client := authsdk.NewSDKClient("https://auth.example.com")

	session, err := client.AuthenticateWithClientCredentials(ctx, clientID, clientSecret)
	if err != nil {
		return err
	}

	created, err := session.CreateClient(ctx, []string{"client:read"})

# Tokens

Access tokens are opaque. They carry no refresh token and the response does
not list their scopes. A Session built from client credentials keeps them
and, when a request fails with token_expired, fetches a new token and
retries the request once.

Credentials can be sent as form fields or with HTTP Basic authentication:

	tok, err := client.ClientCredentialsGrant(ctx, clientID, clientSecret)
	tok, err = client.ClientCredentialsGrantBasic(ctx, clientID, clientSecret)

# Scope Checks

Each Session method documents the scope it needs. When the session's scopes
are known (NewSessionFromToken with scopes, or SetScopes) and
SDKClient.CheckScopes is true, a missing scope fails before any request is
made. Otherwise the server decides.

# Errors

Server errors are returned as *OAuth2Error and compare equal to the
predefined values with errors.Is:

	_, err := session.GetClientScopes(ctx, "missing")
	if errors.Is(err, authsdk.ErrClientNotFound) {
		...
	}

Invalid scope errors also list the rejected and valid scopes:

	var oerr *authsdk.OAuth2Error
	if errors.As(err, &oerr) && oerr.Code == authsdk.ErrorCodeInvalidScope {
		fmt.Println(oerr.InvalidScopes)
	}

# Thread Safety

Sessions are safe for concurrent use. Concurrent requests that see an expired
token share a single re-authentication.
*/
package authsdk
