// SPDX-License-Identifier: MPL-2.0

package projfile

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// commandArgsKind discriminates the three accepted shapes of CommandArgs.
type commandArgsKind int

const (
	commandArgsNone commandArgsKind = iota
	commandArgsString
	commandArgsList
)

// CommandArgs is a command or argument declaration, polymorphic over an
// absent value, a single shell-style string, and an explicit argument
// sequence. The zero value is the absent form.
type CommandArgs struct {
	kind commandArgsKind
	str  string
	list []string
}

// CommandString builds the single-string form.
func CommandString(value string) CommandArgs {
	return CommandArgs{kind: commandArgsString, str: value}
}

// CommandList builds the argument-sequence form.
func CommandList(values ...string) CommandArgs {
	return CommandArgs{kind: commandArgsList, list: values}
}

// IsSet reports whether any value was declared.
func (c CommandArgs) IsSet() bool { return c.kind != commandArgsNone }

// IsEmpty reports whether the declaration carries no usable content: the
// absent form, an empty string, or an empty sequence.
func (c CommandArgs) IsEmpty() bool {
	switch c.kind {
	case commandArgsString:
		return c.str == ""
	case commandArgsList:
		return len(c.list) == 0
	default:
		return true
	}
}

// AsString returns the string form and whether the value is that form.
func (c CommandArgs) AsString() (string, bool) {
	return c.str, c.kind == commandArgsString
}

// AsList returns the sequence form and whether the value is that form.
// The returned slice is the stored one; callers must not mutate it.
func (c CommandArgs) AsList() ([]string, bool) {
	return c.list, c.kind == commandArgsList
}

// FirstPart returns the leading element: for the string form the text up
// to the first space, for the sequence form the first element. Returns
// "" for the absent form or an empty sequence.
func (c CommandArgs) FirstPart() string {
	switch c.kind {
	case commandArgsString:
		for i := 0; i < len(c.str); i++ {
			if c.str[i] == ' ' {
				return c.str[:i]
			}
		}
		return c.str
	case commandArgsList:
		if len(c.list) > 0 {
			return c.list[0]
		}
	}
	return ""
}

// String renders the value for logs and error messages.
func (c CommandArgs) String() string {
	switch c.kind {
	case commandArgsString:
		return c.str
	case commandArgsList:
		return fmt.Sprintf("%v", c.list)
	default:
		return ""
	}
}

// UnmarshalJSON accepts a string or a sequence of strings.
func (c *CommandArgs) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = CommandString(s)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("expected a string or a sequence of strings: %w", err)
	}
	*c = CommandList(list...)
	return nil
}

// MarshalJSON renders the declared form, or null when absent.
func (c CommandArgs) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case commandArgsString:
		return json.Marshal(c.str)
	case commandArgsList:
		return json.Marshal(c.list)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalYAML accepts a string scalar or a sequence of strings.
func (c *CommandArgs) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*c = CommandString(s)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*c = CommandList(list...)
		return nil
	default:
		return fmt.Errorf("expected a string or a sequence of strings")
	}
}
