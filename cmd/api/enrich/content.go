package enrich

import "fmt"

// contentTemplate is the long-form body shown on the detail page.
// It takes the post title and description, in that order.
const contentTemplate = `# %s

%s

## Introduction

In today's rapidly evolving digital landscape, understanding the nuances of modern design and technology is crucial for creating exceptional user experiences. This comprehensive guide explores the key principles and methodologies that drive successful digital products.

## Key Concepts

### User-Centered Design
User-centered design puts the needs, wants, and limitations of the end users at the center of every design decision. This approach ensures that products are not only functional but also intuitive and enjoyable to use.

### Design Systems
A design system is a collection of reusable components, guided by clear standards, that can be assembled together to build any number of applications. It provides consistency and efficiency in the design process.

### Performance Optimization
Modern web applications must be fast and responsive. Performance optimization involves various techniques including code splitting, lazy loading, and efficient asset management.

## Best Practices

1. **Consistency**: Maintain consistent design patterns throughout your application
2. **Accessibility**: Ensure your design is usable by people with disabilities
3. **Responsive Design**: Create layouts that work well on all device sizes
4. **User Testing**: Regularly test your designs with real users

## Implementation Strategies

### Progressive Enhancement
Start with a basic, functional experience and progressively add more advanced features for users with modern browsers and devices.

### Mobile-First Design
Begin designing for mobile devices and then scale up to larger screens. This approach ensures your design works well on the most constrained devices.

### Iterative Development
Use an iterative approach to continuously improve your design based on user feedback and analytics data.

## Conclusion

Creating exceptional digital experiences requires a deep understanding of both design principles and user psychology. By following these guidelines and continuously learning from user feedback, designers can create products that truly serve their users' needs.

Remember that great design is not just about aesthetics. It's about solving real problems for real people in an elegant and efficient way.`

// Content renders the long-form body for a post.
func Content(title, description string) string {
	return fmt.Sprintf(contentTemplate, title, description)
}

// Excerpt cuts description to ExcerptLimit characters and appends "..." when it was longer.
func Excerpt(description string) string {
	runes := []rune(description)
	if len(runes) <= ExcerptLimit {
		return description
	}
	return string(runes[:ExcerptLimit]) + ellipsis
}
