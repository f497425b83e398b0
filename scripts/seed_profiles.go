package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// Seeds a handful of profiles for manual testing of search and connections.
func main() {
	fmt.Println("seeding test profiles...")

	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	dsn := os.Getenv("DB_DSN")

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	profiles := []struct {
		id         int64
		name       string
		profession string
		skills     string
		bio        string
	}{
		{1000001, "Анна", "Дизайнер", "Figma, UI/UX", "Рисую интерфейсы"},
		{1000002, "Борис", "Backend-разработчик", "Go, PostgreSQL", "Пишу сервисы"},
		{1000003, "Вера", "Маркетолог", "SMM, аналитика", "Продвигаю продукты"},
		{1000004, "Глеб", "Продакт-менеджер", "Discovery, метрики", "Запускаю фичи"},
	}

	query := `
		INSERT INTO profiles (user_id, name, profession, skills, bio)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO NOTHING
	`
	for _, p := range profiles {
		if _, err := pool.Exec(context.Background(), query, p.id, p.name, p.profession, p.skills, p.bio); err != nil {
			log.Fatalf("cannot seed profile %d: %v", p.id, err)
		}
	}

	fmt.Printf("seeded %d profiles successfully!\n", len(profiles))
}
