// Command seed provisions the database schema and loads a small demo data
// set for local development. It is destructive when run with -drop.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/models"
	"github.com/KhobaitUddinSimran/Student-Management-System/internal/repository"
	"github.com/KhobaitUddinSimran/Student-Management-System/pkg/config"
	"github.com/KhobaitUddinSimran/Student-Management-System/pkg/database"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL,
    parent_id TEXT REFERENCES users(id),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS classes (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    grade_level INTEGER NOT NULL,
    homeroom_teacher_id TEXT REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS subjects (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS class_subjects (
    id TEXT PRIMARY KEY,
    class_id TEXT NOT NULL REFERENCES classes(id),
    subject_id TEXT NOT NULL REFERENCES subjects(id),
    teacher_id TEXT NOT NULL REFERENCES users(id),
    UNIQUE (class_id, subject_id)
);

CREATE TABLE IF NOT EXISTS student_classes (
    id TEXT PRIMARY KEY,
    student_id TEXT NOT NULL REFERENCES users(id),
    class_id TEXT NOT NULL REFERENCES classes(id),
    UNIQUE (student_id, class_id)
);

CREATE TABLE IF NOT EXISTS grades (
    id TEXT PRIMARY KEY,
    student_id TEXT NOT NULL REFERENCES users(id),
    subject TEXT NOT NULL,
    score DOUBLE PRECISION NOT NULL,
    weight DOUBLE PRECISION NOT NULL DEFAULT 1.0,
    assessment_type TEXT NOT NULL DEFAULT 'EXAM',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS attendance (
    id TEXT PRIMARY KEY,
    student_id TEXT NOT NULL REFERENCES users(id),
    date TEXT NOT NULL,
    status TEXT NOT NULL,
    marked_by TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (student_id, date)
);

CREATE TABLE IF NOT EXISTS notifications (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id),
    title TEXT NOT NULL DEFAULT '',
    message TEXT NOT NULL,
    type TEXT NOT NULL,
    is_read INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

const dropAll = `
DROP TABLE IF EXISTS notifications, attendance, grades, student_classes, class_subjects, subjects, classes, users CASCADE;
`

func main() {
	var (
		drop     bool
		password string
	)
	flag.BoolVar(&drop, "drop", false, "drop all tables before seeding")
	flag.StringVar(&password, "password", "password123", "password for every seeded account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if drop {
		if _, err := db.ExecContext(ctx, dropAll); err != nil {
			log.Fatalf("failed to drop tables: %v", err)
		}
		log.Println("dropped existing tables")
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		log.Fatalf("failed to create schema: %v", err)
	}
	log.Println("schema ready")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	users := repository.NewUserRepository(db)
	classes := repository.NewClassRepository(db)
	grades := repository.NewGradeRepository(db)
	attendance := repository.NewAttendanceRepository(db)

	mkUser := func(name, email string, role models.UserRole) *models.User {
		u := &models.User{Name: name, Email: email, PasswordHash: string(hash), Role: role}
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("failed to create %s: %v", email, err)
		}
		return u
	}

	admin := mkUser("Admin", "admin@school.local", models.RoleAdmin)
	teacher := mkUser("Tahmina Akter", "tahmina@school.local", models.RoleTeacher)
	mathTeacher := mkUser("Rafiq Islam", "rafiq@school.local", models.RoleTeacher)
	parent := mkUser("Shahida Begum", "shahida@school.local", models.RoleParent)

	studentNames := []string{"Arif Hossain", "Nusrat Jahan", "Imran Kabir", "Farzana Haque"}
	students := make([]*models.User, 0, len(studentNames))
	for i, name := range studentNames {
		students = append(students, mkUser(name, fmt.Sprintf("student%d@school.local", i+1), models.RoleStudent))
	}

	if _, err := users.LinkParent(ctx, parent.ID, students[0].ID); err != nil {
		log.Fatalf("failed to link parent: %v", err)
	}

	class := &models.Class{Name: "Class 8-A", GradeLevel: 8, HomeroomTeacherID: &teacher.ID}
	if err := classes.Create(ctx, class); err != nil {
		log.Fatalf("failed to create class: %v", err)
	}
	for _, s := range students {
		if err := classes.Enroll(ctx, s.ID, class.ID); err != nil {
			log.Fatalf("failed to enroll student: %v", err)
		}
	}

	for _, subjectName := range []string{"Mathematics", "Science", "English"} {
		subject := &models.Subject{Name: subjectName}
		if err := classes.CreateSubject(ctx, subject); err != nil {
			log.Fatalf("failed to create subject: %v", err)
		}
		assignment := &models.ClassSubject{ClassID: class.ID, SubjectID: subject.ID, TeacherID: mathTeacher.ID}
		if err := classes.AssignSubject(ctx, assignment); err != nil {
			log.Fatalf("failed to assign subject: %v", err)
		}
	}

	scores := map[string][]float64{
		"Mathematics": {95, 88, 52, 78},
		"Science":     {90, 91, 58, 83},
		"English":     {87, 94, 61, 72},
	}
	for subject, perStudent := range scores {
		for i, score := range perStudent {
			grade := &models.Grade{StudentID: students[i].ID, Subject: subject, Score: score, AssessmentType: "EXAM"}
			if err := grades.Insert(ctx, grade); err != nil {
				log.Fatalf("failed to insert grade: %v", err)
			}
		}
	}

	today := time.Now().UTC().Format("2006-01-02")
	statuses := []models.AttendanceStatus{models.StatusPresent, models.StatusPresent, models.StatusAbsent, models.StatusLate}
	for i, s := range students {
		record := &models.Attendance{StudentID: s.ID, Date: today, Status: statuses[i], MarkedBy: teacher.ID}
		if err := attendance.Upsert(ctx, record); err != nil {
			log.Fatalf("failed to mark attendance: %v", err)
		}
	}

	log.Printf("seeded %d users (admin login: %s / %s)", 4+len(students), admin.Email, password)
}
