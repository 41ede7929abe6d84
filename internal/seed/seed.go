// Package seed holds the content shipped with the site. The Content Store
// falls back to it whenever the remote store is unavailable or a collection
// cannot be loaded.
package seed

import (
	"slices"
	"strconv"

	"elevate-backend/internal/domain"
)

// Products returns the three shipped service offerings.
func Products() []domain.Product {
	return []domain.Product{
		{
			ID:          "audit",
			Title:       "Auditoría Estratégica",
			Description: "El punto de entrada. Un análisis operativo profundo para mapear riesgos y oportunidades.",
			Price:       "USD 2,000 | 6 Horas",
			Features:    []string{"Mapeo de Procesos", "Análisis de Riesgos", "Hoja de Ruta IA", "ROI de Caso de Negocio"},
			Type:        domain.ProductTypeTimeline,
		},
		{
			ID:          "deploy",
			Title:       "Despliegue Embebido",
			Description: "Equipos de ingeniería desplegados construyendo arquitectura personalizada dentro de su ecosistema.",
			Price:       "Precio Personalizado",
			Features:    []string{"Equipo Dedicado", "Integración Legacy", "Desarrollo Custom", "Transferencia Tecnológica"},
			Type:        domain.ProductTypeTimeline,
		},
		{
			ID:          "gov",
			Title:       "Gobernanza de IA",
			Description: "Marcos de cumplimiento por diseño asegurando que su IA siga siendo un activo, no un pasivo.",
			Price:       "Modelo de Retención",
			Features:    []string{"Marco de Cumplimiento", "Auditoría Continua", "Ops de Políticas", "Reportes Ejecutivos"},
			Type:        domain.ProductTypeTimeline,
		},
	}
}

func BlogPosts() []domain.BlogPost {
	return []domain.BlogPost{
		{
			ID:       "1",
			Title:    "La Muerte de los Algoritmos de Caja Negra en FinTech",
			Excerpt:  "Por qué la explicabilidad ya no es una característica, sino un requisito regulatorio para 2026.",
			Image:    "https://images.unsplash.com/photo-1550751827-4bd374c3f58b?auto=format&fit=crop&q=80&w=1000",
			Date:     "OCT 12, 2025",
			ReadTime: "8 MIN LECTURA",
			Category: "REGULACIÓN",
			Slug:     "death-of-black-box",
		},
		{
			ID:       "2",
			Title:    "Datos Sintéticos: ¿El Vacío Legal Ético?",
			Excerpt:  "Navegando las áreas grises de entrenar modelos con datos de pacientes generados en salud.",
			Image:    "https://images.unsplash.com/photo-1558494949-ef526b0042a0?auto=format&fit=crop&q=80&w=1000",
			Date:     "SEP 28, 2025",
			ReadTime: "12 MIN LECTURA",
			Category: "ÉTICA",
			Slug:     "synthetic-data-ethics",
		},
		{
			ID:       "3",
			Title:    "Operacionalizando LLMs On-Premise",
			Excerpt:  "Una guía técnica para el despliegue air-gapped para contratistas de defensa.",
			Image:    "https://images.unsplash.com/photo-1516110833967-0b5716ca1387?auto=format&fit=crop&q=80&w=1000",
			Date:     "SEP 15, 2025",
			ReadTime: "25 MIN LECTURA",
			Category: "INFRAESTRUCTURA",
			Slug:     "llm-on-premise",
		},
		{
			ID:       "4",
			Title:    "Auditando al Auditor: Gobernanza Automatizada",
			Excerpt:  "Cómo construimos una capa de cumplimiento autocorrectiva para un Banco Tier-1.",
			Image:    "https://images.unsplash.com/photo-1526374965328-7f61d4dc18c5?auto=format&fit=crop&q=80&w=1000",
			Date:     "AGO 30, 2025",
			ReadTime: "6 MIN LECTURA",
			Category: "CASO DE ESTUDIO",
			Slug:     "automated-governance",
		},
	}
}

func Partners() []domain.Partner {
	return []domain.Partner{
		{ID: "1", Name: "NVIDIA INCEPTION"},
		{ID: "2", Name: "GOOGLE CLOUD"},
		{ID: "3", Name: "AWS PARTNER"},
		{ID: "4", Name: "MICROSOFT AZURE"},
		{ID: "5", Name: "DATABRICKS"},
		{ID: "6", Name: "HUGGING FACE"},
		{ID: "7", Name: "PINECONE"},
		{ID: "8", Name: "LANGCHAIN"},
	}
}

func Testimonials() []domain.Testimonial {
	return []domain.Testimonial{
		{
			ID:       "1",
			Quote:    "No solo construyeron un modelo; reconstruyeron todo nuestro flujo de ingestión de datos para cumplir con ISO.",
			Author:   "Roberto M.",
			Role:     "CTO",
			Company:  "FinTech Secure",
			Industry: "Finanzas",
		},
		{
			ID:       "2",
			Quote:    "La auditoría estratégica nos ahorró seis meses de desarrollo en una arquitectura sin salida.",
			Author:   "Sarah J.",
			Role:     "VP Ops",
			Company:  "AgriData Global",
			Industry: "Agroindustria",
		},
		{
			ID:       "3",
			Quote:    "Finalmente, un socio de IA que entiende que la carga regulatoria no es algo secundario.",
			Author:   "Dr. A. Chen",
			Role:     "Director",
			Company:  "MediCore Systems",
			Industry: "Salud",
		},
	}
}

var industryNames = []string{"Finanzas", "Seguros", "Salud", "Logística", "Retail", "Agro", "Educación", "Defensa"}

// Industries returns the shipped sectors. Seed ids are positional ("1".."8")
// so they stay stable across restarts.
func Industries() []domain.Industry {
	out := make([]domain.Industry, len(industryNames))
	for i, name := range industryNames {
		out[i] = domain.Industry{ID: strconv.Itoa(i + 1), Name: name}
	}
	return out
}

func TeamMembers() []domain.TeamMember {
	return []domain.TeamMember{
		{
			ID:        "1",
			Name:      "Fundador 1",
			Role:      "CEO & Co-Fundador",
			Bio:       "Experiencia en infraestructura de IA y cumplimiento regulatorio.",
			IsFounder: true,
		},
		{
			ID:        "2",
			Name:      "Fundador 2",
			Role:      "CTO & Co-Fundador",
			Bio:       "Arquitecto de sistemas de IA de alto rendimiento y seguridad.",
			IsFounder: true,
		},
	}
}

// Content bundles every seed collection.
func Content() domain.Content {
	return domain.Content{
		Products:     Products(),
		BlogPosts:    BlogPosts(),
		Partners:     Partners(),
		Testimonials: Testimonials(),
		Industries:   Industries(),
		TeamMembers:  TeamMembers(),
	}
}

// IndustryNames returns the shipped sector labels.
func IndustryNames() []string {
	return slices.Clone(industryNames)
}
