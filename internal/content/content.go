// Package content supplies representative text for a course. It stands in for
// real document parsing of uploaded material.
package content

import "strings"

var paragraphs = []struct {
	keyword string
	text    string
}{
	{"Cloud Computing", "Cloud Computing is a model for enabling ubiquitous, convenient, on-demand network access to a shared pool of configurable computing resources. " +
		"Key concepts include Infrastructure as a Service (IaaS), Platform as a Service (PaaS), and Software as a Service (SaaS). " +
		"Cloud providers like AWS, Azure, and Google Cloud offer various services for storage, computing, and networking. " +
		"Benefits of cloud computing include cost savings, scalability, and flexibility. " +
		"Security and privacy are important considerations in cloud computing."},
	{"OOAD", "Object-Oriented Analysis and Design (OOAD) is a software engineering approach that models a system as a group of interacting objects. " +
		"Key concepts include classes, objects, inheritance, encapsulation, and polymorphism. " +
		"UML (Unified Modeling Language) is used to visualize, specify, design, and document software systems. " +
		"Design patterns like Singleton, Factory, Observer, and Strategy help solve common design problems. " +
		"SOLID principles guide good object-oriented design."},
	{"Computer Design", "Computer Design involves the creation of computer systems and their components. " +
		"Key concepts include CPU architecture, memory hierarchy, I/O systems, and parallel processing. " +
		"The Von Neumann architecture is the basis for most modern computers. " +
		"Performance optimization techniques include pipelining, caching, and branch prediction. " +
		"RISC and CISC are two different approaches to CPU design."},
}

// General is returned for courses that match no keyword.
const General = "This is a general course covering fundamental concepts in computer science. " +
	"Topics include algorithms, data structures, programming languages, and software engineering. " +
	"Students will learn problem-solving techniques and how to design efficient solutions. " +
	"The course emphasizes practical skills and theoretical understanding. " +
	"Projects and assignments help reinforce learning."

// Text returns the paragraph for the first keyword contained in courseLabel.
func Text(courseLabel string) string {
	for _, p := range paragraphs {
		if strings.Contains(courseLabel, p.keyword) {
			return p.text
		}
	}
	return General
}
