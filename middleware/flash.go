package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	sessionLocal     = "session"
	flashCategoryKey = "flash_category"
	flashMessageKey  = "flash_message"
)

// FlashMessage is a one-shot notice shown on the page after a redirect.
type FlashMessage struct {
	Category string
	Message  string
}

// Sessions loads the visitor's session for the request and persists it once
// the handler chain returns.
func Sessions(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		c.Locals(sessionLocal, sess)

		err = c.Next()

		if saveErr := sess.Save(); saveErr != nil && err == nil {
			err = saveErr
		}
		return err
	}
}

// AddFlash queues a message for the next rendered page.
func AddFlash(c *fiber.Ctx, category, message string) {
	sess, ok := c.Locals(sessionLocal).(*session.Session)
	if !ok {
		return
	}
	sess.Set(flashCategoryKey, category)
	sess.Set(flashMessageKey, message)
}

// PopFlash returns the pending message, if any, and clears it.
func PopFlash(c *fiber.Ctx) *FlashMessage {
	sess, ok := c.Locals(sessionLocal).(*session.Session)
	if !ok {
		return nil
	}

	message, _ := sess.Get(flashMessageKey).(string)
	if message == "" {
		return nil
	}
	category, _ := sess.Get(flashCategoryKey).(string)

	sess.Delete(flashMessageKey)
	sess.Delete(flashCategoryKey)

	return &FlashMessage{Category: category, Message: message}
}
