package stub

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"campus/internal/domains/facility/layout"
	facilityModel "campus/internal/domains/facility/model"
	reservationModel "campus/internal/domains/reservation/model"
	userModel "campus/internal/domains/user/model"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/failure"
	"campus/shared/password"
)

// Account is a registered stub user with its bcrypt password hash.
type Account struct {
	User userModel.User
	Hash string
}

// Store is the in-memory state behind the development stub. It keeps
// the same records and conflict rules the production backend applies,
// so the client can be exercised end to end without the real deployment.
type Store struct {
	mu           sync.Mutex
	users        map[string]*Account
	facilities   []facilityModel.Facility
	reservations []reservationModel.Reservation
}

func NewStore() *Store {
	return &Store{
		users:      map[string]*Account{},
		facilities: seedFacilities(),
	}
}

func seedFacilities() []facilityModel.Facility {
	facilities := []facilityModel.Facility{
		{
			ID:             "facility1",
			Name:           "Central Library Reading Room",
			Category:       "seats",
			OperatingHours: "09:00 - 21:00",
			Address:        "Central Library 2F",
			BuildingNumber: "32",
			Notice:         "Quiet zone. Seats are held for two hours.",
		},
		{
			ID:             "facility2",
			Name:           "Study Cafe",
			Category:       "seats",
			OperatingHours: "09:00 - 21:00",
			Address:        "Student Union 1F",
			BuildingNumber: "18",
		},
		{
			ID:             "facility3",
			Name:           "Group Study Rooms",
			Category:       "rooms",
			OperatingHours: "09:00 - 21:00",
			Address:        "Central Library 4F",
			BuildingNumber: "32",
			Rules:          "Rooms seat up to six. Leave the room as you found it.",
		},
		{
			ID:             "facility4",
			Name:           "Innovation Building Seminar Rooms",
			Category:       "rooms",
			OperatingHours: "09:00 - 21:00",
			Address:        "Innovation Building 1F",
			BuildingNumber: "IB",
		},
		{
			ID:             "facility5",
			Name:           "Creative Learning Studios",
			Category:       "rooms",
			OperatingHours: "09:00 - 19:00",
			Address:        "Creative Hall 3F",
			BuildingNumber: "COMMONS",
		},
	}

	for i := range facilities {
		if l, ok := layout.ForFacility(facilities[i].ID); ok {
			facilities[i].MaxCount = l.Total()
		}

		facilities[i].AvailableReservation = true
		facilities[i].CongestionLevel = "low"
	}

	return facilities
}

func (s *Store) Register(user userModel.User, plainPassword string) (userModel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.ID]; exists {
		return userModel.User{}, failure.Conflict("user already registered") //nolint:wrapcheck
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return userModel.User{}, err
	}

	s.users[user.ID] = &Account{User: user, Hash: hash}

	return user, nil
}

func (s *Store) Authenticate(userID, plainPassword string) (userModel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, exists := s.users[userID]
	if !exists || password.Verify(plainPassword, account.Hash) != nil {
		return userModel.User{}, failure.Unauthorized("invalid user id or password") //nolint:wrapcheck
	}

	return account.User, nil
}

func (s *Store) GetUser(userID string) (userModel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, exists := s.users[userID]
	if !exists {
		return userModel.User{}, failure.NotFound(userModel.EntityName) //nolint:wrapcheck
	}

	return account.User, nil
}

func (s *Store) UpdateUser(userID, name, phoneNumber, plainPassword string) (userModel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, exists := s.users[userID]
	if !exists {
		return userModel.User{}, failure.NotFound(userModel.EntityName) //nolint:wrapcheck
	}

	if name != constant.Empty {
		account.User.Name = name
	}

	if phoneNumber != constant.Empty {
		account.User.PhoneNumber = phoneNumber
	}

	if plainPassword != constant.Empty {
		hash, err := password.Hash(plainPassword)
		if err != nil {
			return userModel.User{}, err
		}

		account.Hash = hash
	}

	return account.User, nil
}

func (s *Store) HasUserWithPhone(userID, phoneNumber string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, exists := s.users[userID]

	return exists && account.User.PhoneNumber == phoneNumber
}

func (s *Store) ListFacilities() []facilityModel.Facility {
	s.mu.Lock()
	defer s.mu.Unlock()

	facilities := make([]facilityModel.Facility, len(s.facilities))
	copy(facilities, s.facilities)

	for i := range facilities {
		facilities[i].CurrentCount = s.occupiedCountLocked(facilities[i].ID)
	}

	return facilities
}

func (s *Store) GetFacility(facilityID string) (facilityModel.Facility, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, facility := range s.facilities {
		if facility.ID == facilityID {
			facility.CurrentCount = s.occupiedCountLocked(facilityID)

			return facility, nil
		}
	}

	return facilityModel.Facility{}, failure.NotFound(facilityModel.EntityName) //nolint:wrapcheck
}

func (s *Store) ListFacilityReservations(facilityID string) []reservationModel.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := []reservationModel.Reservation{}

	for _, record := range s.reservations {
		if record.FacilityID == facilityID {
			records = append(records, record)
		}
	}

	return records
}

func (s *Store) ListUserReservations(userID string) []reservationModel.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := []reservationModel.Reservation{}

	// Newest first, active records ahead of history.
	for i := len(s.reservations) - 1; i >= 0; i-- {
		if s.reservations[i].UserID == userID {
			records = append(records, s.reservations[i])
		}
	}

	return records
}

// CreateReservation applies the backend's two conflict rules: a user may
// hold at most one active reservation, and a resource window may not
// overlap an existing active window on the same facility.
func (s *Store) CreateReservation(record reservationModel.Reservation) (reservationModel.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.reservations {
		if existing.IsCancelled() {
			continue
		}

		if existing.UserID == record.UserID {
			return reservationModel.Reservation{}, failure.Conflict("user already has an active reservation") //nolint:wrapcheck
		}

		if existing.FacilityID == record.FacilityID &&
			existing.SeatNumber == record.SeatNumber &&
			overlaps(existing, record) {
			return reservationModel.Reservation{}, failure.Conflict("seat " + strconv.Itoa(record.SeatNumber) + " is already reserved") //nolint:wrapcheck
		}
	}

	record.ID = uuid.NewString()
	record.Status = constant.StatusActive
	record.Active = true

	s.reservations = append(s.reservations, record)

	return record, nil
}

func (s *Store) ExtendReservation(reservationID, userID string, extendBy time.Duration) (reservationModel.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.findLocked(reservationID)
	if index < 0 || s.reservations[index].UserID != userID {
		return reservationModel.Reservation{}, failure.NotFound(reservationModel.EntityName) //nolint:wrapcheck
	}

	if s.reservations[index].IsCancelled() {
		return reservationModel.Reservation{}, failure.Conflict("reservation is no longer active") //nolint:wrapcheck
	}

	extended := s.reservations[index].EndTime.Time().Add(extendBy)
	s.reservations[index].EndTime = gDto.FromTime(extended)

	return s.reservations[index], nil
}

func (s *Store) CancelReservation(reservationID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.findLocked(reservationID)
	if index < 0 || s.reservations[index].UserID != userID {
		return failure.NotFound(reservationModel.EntityName) //nolint:wrapcheck
	}

	s.reservations[index].Status = constant.StatusCancelled
	s.reservations[index].Active = false

	return nil
}

func (s *Store) findLocked(reservationID string) int {
	for i := range s.reservations {
		if s.reservations[i].ID == reservationID {
			return i
		}
	}

	return -1
}

func (s *Store) occupiedCountLocked(facilityID string) int {
	count := 0

	for _, record := range s.reservations {
		if record.FacilityID == facilityID && !record.IsCancelled() {
			count++
		}
	}

	return count
}

func overlaps(a, b reservationModel.Reservation) bool {
	return a.StartTime.Time().Before(b.EndTime.Time()) && b.StartTime.Time().Before(a.EndTime.Time())
}
