// Package shop is a minimal e-commerce backend: account registration with
// email confirmation, credential-based login with JWT issuance, and a
// Clients CRUD surface.
//
// Credential store:
//   - CredentialStore owns user identity records, password hashing and
//     verification, and confirmation-code issuance. Codes are single use:
//     the store clears the stored value when a code is redeemed, so a second
//     redemption of the same code fails.
//
// Tokens:
//   - TokenIssuer signs stateless bearer tokens (HS256) with a fixed
//     one-hour lifetime. There is no server-side session record; validity
//     is a function of signature and expiry only. TokenGuard validates
//     bearer tokens on protected routes.
//
// Workflow:
//   - RegisterAccountHandler and ConfirmEmailHandler orchestrate the store
//     and the mail dispatcher. Mail dispatch failures are logged and do not
//     roll back account creation.
package shop
