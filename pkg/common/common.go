package common

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

var snowflakeNode *snowflake.Node

func init() {
	var err error
	snowflakeNode, err = snowflake.NewNode(int64(os.Getpid() % 1024))
	if err != nil {
		panic(err)
	}
}

// UUID returns a random uuid string used as entity primary key.
func UUID() string {
	return uuid.New().String()
}

// NextOrderNumber returns a sortable snowflake-based order number.
func NextOrderNumber() string {
	return fmt.Sprintf("ORD-%s", snowflakeNode.Generate().Base36())
}

// RandomHex returns n random bytes hex-encoded, used as the fallback
// cookie-session secret.
func RandomHex(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func FmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
