package main

import (
	"github.com/gitp-cli/gitp/internal/ui/prompt"
)

// httpsInput is the result of the interactive HTTPS credential walk.
type httpsInput struct {
	host        string
	username    string
	token       string
	useKeychain bool
	cancelled   bool
}

// storageChoices are the token storage options, keychain first.
var storageChoices = []string{
	"OS keychain",
	"Plaintext in the profile store",
}

// promptHTTPSCredential walks through host, username, token and storage
// for an HTTPS credential. The token is read masked and comes back as
// plaintext; the caller decides when to move it into the keychain.
func promptHTTPSCredential(initialHost, initialUsername string) (httpsInput, error) {
	var in httpsInput

	host, err := prompt.TextInput("HTTPS host", "github.com", initialHost)
	if err != nil {
		return in, err
	}
	if host.Cancelled {
		in.cancelled = true
		return in, nil
	}

	username, err := prompt.TextInput("HTTPS username", "jane", initialUsername)
	if err != nil {
		return in, err
	}
	if username.Cancelled {
		in.cancelled = true
		return in, nil
	}

	token, err := prompt.Password("HTTPS token")
	if err != nil {
		return in, err
	}
	if token.Cancelled {
		in.cancelled = true
		return in, nil
	}

	storage, err := prompt.Select("Where should the token be stored?", storageChoices)
	if err != nil {
		return in, err
	}
	if storage.Cancelled {
		in.cancelled = true
		return in, nil
	}

	in.host = host.Value
	in.username = username.Value
	in.token = token.Value
	in.useKeychain = storage.Index == 0
	return in, nil
}
