package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubmitRejectsEmptyQuery(t *testing.T) {
	setupDataFolder(t)
	helpService := NewHelpService()

	_, err := helpService.Submit("asha@example.org", "Asha", "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)

	requests, err := helpService.List()
	assert.NoError(t, err)
	assert.Empty(t, requests)
}

func TestSubmitAppendsTrimmedQueryWithTimestamp(t *testing.T) {
	setupDataFolder(t)
	helpService := NewHelpService()

	request, err := helpService.Submit("asha@example.org", "Asha", "  how do I set up the dev env?  ")
	assert.NoError(t, err)
	assert.Equal(t, "how do I set up the dev env?", request.Query)
	assert.NotEmpty(t, request.Timestamp)

	_, err = helpService.Submit("mina@example.org", "Mina", "stuck on the dataset step")
	assert.NoError(t, err)

	requests, err := helpService.List()
	assert.NoError(t, err)
	assert.Len(t, requests, 2)
	assert.Equal(t, "Asha", requests[0].Developer)
	assert.Equal(t, "Mina", requests[1].Developer)
}
