package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wolfman30/clinic-assistant/internal/clinic"
	"github.com/wolfman30/clinic-assistant/internal/config"
	"github.com/wolfman30/clinic-assistant/internal/conversation"
	"github.com/wolfman30/clinic-assistant/pkg/logging"
)

// console is the interactive front desk: a menu for clinic management plus
// the chat loop against the assistant.
type console struct {
	engine  *conversation.Engine
	service *clinic.Service
	scanner *bufio.Scanner
	clinic  string
}

func runConsole(cfg *config.Config, engine *conversation.Engine, service *clinic.Service, logger *logging.Logger) {
	c := &console{
		engine:  engine,
		service: service,
		scanner: bufio.NewScanner(os.Stdin),
		clinic:  cfg.ClinicName,
	}
	logger.Info("console started")
	c.run()
}

func (c *console) run() {
	ctx := context.Background()
	fmt.Printf("Welcome to %s Management System\n", c.clinic)
	for {
		fmt.Println()
		fmt.Println("1. Add doctor")
		fmt.Println("2. Register patient")
		fmt.Println("3. List doctors")
		fmt.Println("4. List patients")
		fmt.Println("5. Search patients")
		fmt.Println("6. Chat with appointment assistant")
		fmt.Println("7. Add review")
		fmt.Println("8. List reviews for a doctor")
		fmt.Println("9. Show statistics")
		fmt.Println("0. Quit")

		switch c.prompt("Choose an option: ") {
		case "1":
			c.addDoctor()
		case "2":
			c.registerPatient()
		case "3":
			c.listDoctors(ctx)
		case "4":
			c.listPatients()
		case "5":
			c.searchPatients()
		case "6":
			c.chat(ctx)
		case "7":
			c.addReview(ctx)
		case "8":
			c.listReviews(ctx)
		case "9":
			c.showStats(ctx)
		case "0", "q", "quit", "exit":
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Println("Unknown option.")
		}
	}
}

// prompt prints the label and returns the next trimmed input line. EOF reads
// as "0" so a closed stdin exits the menu cleanly.
func (c *console) prompt(label string) string {
	fmt.Print(label)
	if !c.scanner.Scan() {
		return "0"
	}
	return strings.TrimSpace(c.scanner.Text())
}

func (c *console) addDoctor() {
	d := clinic.Doctor{
		FirstName:     c.prompt("First name: "),
		LastName:      c.prompt("Last name: "),
		Phone:         c.prompt("Phone: "),
		Email:         c.prompt("Email: "),
		LicenseNumber: c.prompt("License number: "),
	}
	specialties := clinic.Specialties()
	for i, s := range specialties {
		fmt.Printf("%d. %s\n", i+1, s)
	}
	if idx, err := strconv.Atoi(c.prompt("Specialty: ")); err == nil && idx >= 1 && idx <= len(specialties) {
		d.Specialty = specialties[idx-1]
	} else {
		d.Specialty = clinic.SpecialtyGeneral
	}

	if err := c.service.AddDoctor(d); err != nil {
		fmt.Println("Could not add doctor:", err)
		return
	}
	fmt.Printf("Dr. %s added.\n", d.FullName())
}

func (c *console) registerPatient() {
	p := clinic.Patient{
		FirstName: c.prompt("First name: "),
		LastName:  c.prompt("Last name: "),
		Phone:     c.prompt("Phone: "),
		Email:     c.prompt("Email: "),
	}
	if age, err := strconv.Atoi(c.prompt("Age: ")); err == nil {
		p.Age = age
	}
	genders := clinic.Genders()
	for i, g := range genders {
		fmt.Printf("%d. %s\n", i+1, g)
	}
	if idx, err := strconv.Atoi(c.prompt("Gender: ")); err == nil && idx >= 1 && idx <= len(genders) {
		p.Gender = genders[idx-1]
	} else {
		p.Gender = clinic.GenderOther
	}

	if err := c.service.AddPatient(p); err != nil {
		fmt.Println("Could not register patient:", err)
		return
	}
	fmt.Printf("Patient %s registered.\n", p.FullName())
}

func (c *console) listDoctors(ctx context.Context) {
	doctors := c.service.ListDoctors(ctx)
	if len(doctors) == 0 {
		fmt.Println("No doctors on staff yet.")
		return
	}
	for _, d := range doctors {
		fmt.Printf("Dr. %s (%s) - Rating: %.1f/5 - License: %s\n",
			d.FullName(), d.Specialty, d.PatientRating, d.LicenseNumber)
	}
}

func (c *console) listPatients() {
	patients := c.service.ListPatients()
	if len(patients) == 0 {
		fmt.Println("No patients registered yet.")
		return
	}
	for _, p := range patients {
		fmt.Printf("%s, age %d (%s) - %s\n", p.FullName(), p.Age, p.Gender, p.Phone)
	}
}

func (c *console) searchPatients() {
	term := c.prompt("Search term (name or phone): ")
	matches := c.service.FindPatients(term)
	if len(matches) == 0 {
		fmt.Printf("No patients match '%s'.\n", term)
		return
	}
	for _, p := range matches {
		fmt.Printf("%s, age %d - %s\n", p.FullName(), p.Age, p.Phone)
	}
}

// chat runs the assistant loop until the user types exit. The engine treats
// exit as a global abort, so one extra check here ends the loop itself.
func (c *console) chat(ctx context.Context) {
	name := c.prompt("Your name: ")
	fmt.Println("Chat started. Type 'exit' to return to the menu.")
	for {
		input := c.prompt("> ")
		if input == "" {
			continue
		}
		reply := c.engine.Process(ctx, name, input)
		fmt.Println(reply)
		if lower := strings.ToLower(input); lower == "exit" || lower == "quit" {
			return
		}
	}
}

func (c *console) addReview(ctx context.Context) {
	patient := c.prompt("Your name: ")
	doctor := c.prompt("Doctor name: ")
	rating, err := strconv.Atoi(c.prompt("Rating (1-5): "))
	if err != nil {
		fmt.Println("Rating must be a number between 1 and 5.")
		return
	}
	comment := c.prompt("Comment: ")
	anonymous := strings.EqualFold(c.prompt("Post anonymously? (y/n): "), "y")

	review := clinic.NewReview(patient, doctor, rating, comment, anonymous)
	if err := c.service.AddReview(ctx, review); err != nil {
		fmt.Println("Could not add review:", err)
		return
	}
	fmt.Println("Review added. Thank you!")
}

func (c *console) listReviews(ctx context.Context) {
	doctor := c.prompt("Doctor name: ")
	reviews := c.service.ReviewsForDoctor(ctx, doctor)
	if len(reviews) == 0 {
		fmt.Printf("No reviews for '%s' yet.\n", doctor)
		return
	}
	for _, r := range reviews {
		fmt.Printf("%d/5 by %s: %s\n", r.Rating, r.Reviewer(), r.Comment)
	}
}

func (c *console) showStats(ctx context.Context) {
	stats := c.service.GetStats(ctx)
	fmt.Printf("Doctors: %d\n", stats.TotalDoctors)
	fmt.Printf("Patients: %d\n", stats.TotalPatients)
	fmt.Printf("Appointments: %d\n", stats.TotalAppointments)
	fmt.Printf("Reviews: %d\n", stats.TotalReviews)
}
