package main

import (
	"fmt"
	"log"

	"github.com/nathanael250/travooz-hms-sub003/models"
	"github.com/nathanael250/travooz-hms-sub003/storage"

	"golang.org/x/crypto/bcrypt"
)

// Seeds a demo hotel with room types, rooms and an admin account so the
// dashboard has something to show on a fresh database.
func main() {
	db := storage.InitializeDB()

	property := models.Property{
		Name:     "Travooz Demo Hotel",
		City:     "Kigali",
		Country:  "Rwanda",
		Currency: "RWF",
	}
	if err := db.Where("name = ?", property.Name).FirstOrCreate(&property).Error; err != nil {
		log.Fatalf("Error seeding property: %v", err)
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	admin := models.User{
		PropertyID: property.ID,
		FirstName:  "Demo",
		LastName:   "Admin",
		Email:      "admin@travooz.local",
		Password:   string(hashed),
		Role:       "admin",
	}
	if err := db.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error; err != nil {
		log.Fatalf("Error seeding admin user: %v", err)
	}

	roomTypes := []models.RoomType{
		{PropertyID: property.ID, Name: "Standard", NightlyPrice: 45000, MaxOccupancy: 2, BedCount: 1},
		{PropertyID: property.ID, Name: "Deluxe", NightlyPrice: 70000, MaxOccupancy: 3, BedCount: 2},
		{PropertyID: property.ID, Name: "Suite", NightlyPrice: 120000, MaxOccupancy: 4, BedCount: 2},
	}
	for i := range roomTypes {
		if err := db.Where("property_id = ? AND name = ?", property.ID, roomTypes[i].Name).
			FirstOrCreate(&roomTypes[i]).Error; err != nil {
			log.Fatalf("Error seeding room type %s: %v", roomTypes[i].Name, err)
		}
	}

	floors := []string{"1", "1", "2", "2", "3"}
	for i, number := range []string{"101", "102", "201", "202", "301"} {
		room := models.Room{
			PropertyID:  property.ID,
			RoomTypeID:  roomTypes[i%len(roomTypes)].ID,
			RoomNumber:  number,
			Floor:       floors[i],
			Status:      models.RoomStatusAvailable,
			Cleanliness: models.CleanlinessClean,
		}
		if err := db.Where("property_id = ? AND room_number = ?", property.ID, number).
			FirstOrCreate(&room).Error; err != nil {
			log.Fatalf("Error seeding room %s: %v", number, err)
		}
	}

	fmt.Println("Demo property seeded successfully!")
}
