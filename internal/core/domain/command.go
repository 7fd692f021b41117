package domain

import (
	"fmt"
	"slices"
)

// OptionType mirrors the numeric application command option types of the Discord API.
type OptionType int

const (
	OptionTypeSubCommand OptionType = iota + 1
	OptionTypeSubCommandGroup
	OptionTypeString
	OptionTypeInteger
	OptionTypeBoolean
	OptionTypeUser
	OptionTypeChannel
	OptionTypeRole
	OptionTypeMentionable
	OptionTypeNumber
	OptionTypeAttachment
)

type OptionChoice struct {
	Name  string
	Value any
}

type CommandOption struct {
	Type        OptionType
	Name        string
	Description string
	Required    bool
	Choices     []OptionChoice
	Options     []CommandOption
}

// CommandDefinition is the locally desired state of a slash command.
type CommandDefinition struct {
	Name                     string
	Description              string
	DefaultMemberPermissions *int64
	Options                  []CommandOption
}

// RemoteCommand is the platform's record of a registered command.
type RemoteCommand struct {
	ID                       string
	ApplicationID            string
	Name                     string
	Description              string
	DefaultMemberPermissions *int64
	Options                  []CommandOption
}

// Differs reports whether patching remote is needed to reach d. Names are not compared.
func (d CommandDefinition) Differs(remote RemoteCommand) bool {
	return d.Description != remote.Description ||
		!permissionsEqual(d.DefaultMemberPermissions, remote.DefaultMemberPermissions) ||
		!OptionsEqual(d.Options, remote.Options)
}

// OptionsEqual compares option lists element by element; order matters, length mismatch is never equal.
func OptionsEqual(a, b []CommandOption) bool {
	return slices.EqualFunc(a, b, CommandOption.Equal)
}

// Equal compares two options field by field. Nil and empty lists are the same, and choice values are
// compared by their printed form since the API hands back numbers as float64.
func (o CommandOption) Equal(other CommandOption) bool {
	return o.Type == other.Type &&
		o.Name == other.Name &&
		o.Description == other.Description &&
		o.Required == other.Required &&
		slices.EqualFunc(o.Choices, other.Choices, choiceEqual) &&
		OptionsEqual(o.Options, other.Options)
}

func choiceEqual(a, b OptionChoice) bool {
	return a.Name == b.Name && fmt.Sprint(a.Value) == fmt.Sprint(b.Value)
}

func permissionsEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}
