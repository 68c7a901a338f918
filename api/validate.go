package api

import (
	"errors"
	"fmt"
)

//MaxMessages is the most history entries kept by NormalizeMessages
const MaxMessages = 80

//MaxContentLength is the longest message content accepted by ValidateMessages
const MaxContentLength = 32000

//ValidateString returns an error if the given value is not within the parameters
func ValidateString(field, value string, max int) error {
	if value == "" {
		return fmt.Errorf("%s must not be empty", field)
	} else if len(value) > max {
		return fmt.Errorf("%s length (%d) was more than maximum allowed (%d)", field, len(value), max)
	}
	return nil
}

//ValidateMessages returns an error if msgs can not be sent to the transport.
//The last message must come from the user.
func ValidateMessages(msgs []Message) error {
	if len(msgs) == 0 {
		return errors.New("messages must not be empty")
	}
	for i, m := range msgs {
		if m.Role != RoleUser && m.Role != RoleAssistant {
			return fmt.Errorf("messages[%d].role (%s) must be user or assistant", i, m.Role)
		}
		if err := ValidateString(fmt.Sprintf("messages[%d].content", i), m.Content, MaxContentLength); err != nil {
			return err
		}
	}
	if msgs[len(msgs)-1].Role != RoleUser {
		return errors.New("last message must have role user")
	}
	return nil
}
