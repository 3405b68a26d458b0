package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"cospace/internal/database"
	"cospace/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "cospace.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM availability_records")
	db.Exec("DELETE FROM reservation_details")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM coworking_areas")
	db.Exec("DELETE FROM space_photos")
	db.Exec("DELETE FROM coworking_spaces")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@cospace.kz",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Admin",
	}
	db.Create(&admin)
	log.Println("Admin created: admin@cospace.kz / admin123")

	members := []domain.User{}
	memberEmails := []string{"asel@mail.kz", "bekzat@gmail.com", "dina@yandex.kz"}
	for i, email := range memberEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("member123"), bcrypt.DefaultCost)
		member := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleMember,
			Name:         fmt.Sprintf("Member %d", i+1),
		}
		db.Create(&member)
		members = append(members, member)
	}

	hosters := []domain.User{}
	hosterEmails := []string{"aidar@hubone.kz", "gulnaz@deskworks.kz", "yerlan@colab.kz"}
	for i, email := range hosterEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("hoster123"), bcrypt.DefaultCost)
		hoster := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleHoster,
			Name:         fmt.Sprintf("Hoster %d", i+1),
		}
		db.Create(&hoster)
		hosters = append(hosters, hoster)
	}

	// ================== SPACES ==================
	log.Println("Creating coworking spaces...")
	spaces := make([]domain.CoworkingSpace, 0, 5)
	for i := 0; i < 5; i++ {
		hoster := hosters[i%len(hosters)]
		space := domain.CoworkingSpace{
			HosterID:    hoster.ID,
			Title:       fmt.Sprintf("CoSpace Hub %d", i+1),
			Description: "Bright coworking space in the city center",
			Street:      fmt.Sprintf("Abay Ave %d", i+10),
			City:        "Almaty",
			Capacity:    40 + i*10,
			PricePerDay: 5000 + float64(i)*1000,
			Status:      domain.SpaceApproved,
			Photos: []domain.SpacePhoto{
				{URL: fmt.Sprintf("/static/spaces/hub%d-1.jpg", i+1), Position: 0},
				{URL: fmt.Sprintf("/static/spaces/hub%d-2.jpg", i+1), Position: 1},
			},
		}
		db.Create(&space)
		spaces = append(spaces, space)
	}

	// One pending listing so the approval job has work on first boot.
	pending := domain.CoworkingSpace{
		HosterID:    hosters[0].ID,
		Title:       "Fresh Submission",
		Description: "Awaiting review",
		Street:      "Dostyk Ave 1",
		City:        "Almaty",
		Capacity:    20,
		PricePerDay: 4000,
		Status:      domain.SpacePending,
		Photos: []domain.SpacePhoto{
			{URL: "/static/spaces/fresh-1.jpg", Position: 0},
			{URL: "/static/spaces/fresh-2.jpg", Position: 1},
		},
	}
	db.Create(&pending)

	// ================== AREAS ==================
	log.Println("Creating areas...")
	areaTypes := []domain.AreaType{domain.AreaSharedDesks, domain.AreaPrivateOffice, domain.AreaIndividualDesk}
	areas := make([]domain.CoworkingArea, 0, len(spaces)*3)
	for _, space := range spaces {
		for j, at := range areaTypes {
			area := domain.CoworkingArea{
				SpaceID:     space.ID,
				Name:        fmt.Sprintf("Area %d", j+1),
				AreaType:    at,
				Capacity:    4 + j*4,
				PricePerDay: 2000 + float64(j)*1500,
				IsListed:    true,
			}
			db.Create(&area)
			areas = append(areas, area)
		}
	}

	// ================== RESERVATIONS ==================
	log.Println("Creating reservations...")
	today := domain.Midnight(time.Now())
	statuses := []domain.ReservationStatus{
		domain.ReservationPending,
		domain.ReservationConfirmed,
		domain.ReservationCompleted,
	}
	for i := 0; i < 6; i++ {
		area := areas[i%len(areas)]
		member := members[i%len(members)]
		start := today.AddDate(0, 0, i*3-6)
		end := start.AddDate(0, 0, 2)

		res := domain.Reservation{
			UserID:        member.ID,
			SpaceID:       area.SpaceID,
			StartDate:     start,
			EndDate:       end,
			TotalPrice:    area.PricePerDay * 2,
			Status:        statuses[i%len(statuses)],
			PaymentMethod: "card",
			Details: []domain.ReservationDetail{
				{AreaID: area.ID, PricePerDay: area.PricePerDay},
			},
		}
		db.Create(&res)

		// Materialize the ledger rows this reservation consumed.
		domain.EachDay(start, end, func(day time.Time) {
			db.Create(&domain.AvailabilityRecord{
				AreaID:         area.ID,
				Date:           day,
				AvailableSpots: area.Capacity - 1,
				Capacity:       area.Capacity,
			})
		})
	}

	log.Println("Seed completed!")
	log.Println("Test accounts:")
	log.Println("Admin:   admin@cospace.kz / admin123")
	log.Println("Members: asel@mail.kz bekzat@gmail.com dina@yandex.kz / member123")
	log.Println("Hosters: aidar@hubone.kz gulnaz@deskworks.kz yerlan@colab.kz / hoster123")
}
