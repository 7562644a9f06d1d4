package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// InitAdmin seeds the first admin account from ADMIN_EMAIL/ADMIN_PASSWORD.
// Every other account is created through the API by an existing admin, so
// without this seed a fresh database would be unusable.
func InitAdmin(database *Database) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin bootstrap")
		return
	}

	var count int
	err := database.ExecQueryRow(context.Background(),
		"SELECT COUNT(*) FROM users WHERE email = $1", adminEmail).Scan(&count)
	if err != nil {
		log.Fatal(err)
	}

	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal(err)
		}
		_, err = database.Exec(context.Background(), `
            INSERT INTO users (id, email, name, password, role, status, created_at)
            VALUES ($1, $2, $3, $4, 'admin', 'active', $5)
        `, uuid.NewString(), adminEmail, "Administrator", string(hash), time.Now().UTC())
		if err != nil {
			log.Fatal(err)
		}
		log.Println("Admin user created successfully.")
	} else {
		log.Println("Admin user already exists.")
	}
}
